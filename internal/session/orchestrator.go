package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/exporter"
	"github.com/AnshRaj112/ytsummary-backend/internal/generator"
	"github.com/AnshRaj112/ytsummary-backend/internal/metrics"
	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"github.com/AnshRaj112/ytsummary-backend/internal/store"
	"github.com/AnshRaj112/ytsummary-backend/internal/transcript"
	"github.com/AnshRaj112/ytsummary-backend/internal/translator"
	"github.com/AnshRaj112/ytsummary-backend/pkg/utils"
)

var (
	ErrWrongScreen     = errors.New("action not available on the current screen")
	ErrInvalidMode     = errors.New("unknown sign-in option")
	ErrEmptyPassword   = errors.New("password is required")
	ErrNoTranscript    = errors.New("submit a video link with an available transcript first")
	ErrNoContent       = errors.New("generate content first")
	ErrNoTranslation   = errors.New("translate the content first")
	ErrArchiveDisabled = errors.New("export archiving is not configured")
)

type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID, language string) (string, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, kind models.ContentKind, transcript string, targetWords int) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text, language string) (string, error)
}

type Exporter interface {
	Export(text, label string) (*exporter.Document, error)
}

type Archiver interface {
	ArchiveDocument(ctx context.Context, name string, data []byte) (string, error)
}

// AdminCredentials come from process configuration, not the account store.
type AdminCredentials struct {
	Email    string
	Password string
}

// Video describes a link that resolved to a transcript.
type Video struct {
	ID           string `json:"video_id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Overview is the admin screen's read-only data.
type Overview struct {
	Users   []models.UserSummary    `json:"users"`
	Content []models.ContentSummary `json:"content"`
}

// Orchestrator sequences the external services for one interaction at a time.
// Every operation takes the current State and returns the next one; when an
// operation fails the input state is returned unchanged, except that a failed
// SubmitLink forgets the previous video.
type Orchestrator struct {
	fetcher    TranscriptFetcher
	generator  ContentGenerator
	translator Translator
	exporter   Exporter
	archiver   Archiver
	accounts   store.Accounts
	admin      AdminCredentials
	language   string
	logger     *zap.Logger
	now        func() time.Time
}

type Deps struct {
	Fetcher    TranscriptFetcher
	Generator  ContentGenerator
	Translator Translator
	Exporter   Exporter
	Archiver   Archiver // optional
	Accounts   store.Accounts
	Admin      AdminCredentials
	// TranscriptLanguage is the caption track requested for every video.
	TranscriptLanguage string
	Logger             *zap.Logger
}

func NewOrchestrator(d Deps) *Orchestrator {
	lang := d.TranscriptLanguage
	if lang == "" {
		lang = "en"
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fetcher:    d.Fetcher,
		generator:  d.Generator,
		translator: d.Translator,
		exporter:   d.Exporter,
		archiver:   d.Archiver,
		accounts:   d.Accounts,
		admin:      d.Admin,
		language:   lang,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ArchiveEnabled reports whether Archive can be used.
func (o *Orchestrator) ArchiveEnabled() bool { return o.archiver != nil }

func (o *Orchestrator) SelectMode(st State, mode AuthMode) (State, error) {
	if st.Screen != ScreenUnauthenticated {
		return st, ErrWrongScreen
	}
	if !mode.Valid() {
		return st, ErrInvalidMode
	}
	return st.WithMode(mode), nil
}

func (o *Orchestrator) Login(ctx context.Context, st State, email, password string) (State, error) {
	if st.Screen != ScreenUnauthenticated {
		return st, ErrWrongScreen
	}
	email = utils.NormalizeIdentifier(email)

	err := o.accounts.Authenticate(ctx, email, password)
	metrics.ObserveBackend(metrics.BackendStore, ignoreExpected(err))
	if err != nil {
		return st, err
	}

	o.logger.Info("user logged in", zap.String("email", email))
	return st.LoggedInAs(email), nil
}

// Signup creates the account and returns to the login form; it does not log in.
func (o *Orchestrator) Signup(ctx context.Context, st State, email, password string) (State, error) {
	if st.Screen != ScreenUnauthenticated {
		return st, ErrWrongScreen
	}
	email = utils.NormalizeIdentifier(email)
	if err := utils.ValidateIdentifier(email); err != nil {
		return st, err
	}
	if password == "" {
		return st, ErrEmptyPassword
	}

	err := o.accounts.Register(ctx, email, password)
	metrics.ObserveBackend(metrics.BackendStore, ignoreExpected(err))
	if err != nil {
		return st, err
	}
	return st.Registered(), nil
}

func (o *Orchestrator) AdminLogin(st State, email, password string) (State, error) {
	if st.Screen != ScreenUnauthenticated {
		return st, ErrWrongScreen
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(o.admin.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(o.admin.Password)) == 1
	if o.admin.Email == "" || !emailOK || !passOK {
		o.logger.Warn("admin login rejected")
		return st, store.ErrInvalidCredentials
	}
	return st.AsAdmin(), nil
}

// Logout clears every session field, from either signed-in screen.
func (o *Orchestrator) Logout(st State) (State, error) {
	if st.Screen == ScreenUnauthenticated {
		return st, ErrWrongScreen
	}
	return st.LoggedOut(), nil
}

// SubmitLink parses the link and fetches its transcript. A link that does not
// parse never reaches the fetcher. On either failure the previous video is
// dropped from the returned state along with the error.
func (o *Orchestrator) SubmitLink(ctx context.Context, st State, link string) (State, Video, error) {
	if st.Screen != ScreenUser {
		return st, Video{}, ErrWrongScreen
	}
	videoID, err := transcript.ParseVideoID(link)
	if err != nil {
		return st.WithoutVideo(), Video{}, err
	}

	text, err := o.fetcher.Fetch(ctx, videoID, o.language)
	metrics.ObserveBackend(metrics.BackendTranscript, err)
	if err != nil {
		return st.WithoutVideo(), Video{ID: videoID, ThumbnailURL: transcript.ThumbnailURL(videoID)}, err
	}

	return st.WithVideo(videoID, text), Video{ID: videoID, ThumbnailURL: transcript.ThumbnailURL(videoID)}, nil
}

// Generate runs the generator for the current transcript. The word count is
// only used, and only validated, for summaries.
func (o *Orchestrator) Generate(ctx context.Context, st State, kind models.ContentKind, wordCount int) (State, error) {
	if st.Screen != ScreenUser {
		return st, ErrWrongScreen
	}
	if !st.HasTranscript() {
		return st, ErrNoTranscript
	}
	if !kind.Valid() {
		return st, generator.ErrUnknownKind
	}
	target := 0
	if kind == models.KindSummary {
		if wordCount == 0 {
			wordCount = generator.DefaultWordCount
		}
		if err := generator.ValidateWordCount(wordCount); err != nil {
			return st, err
		}
		target = wordCount
	} else {
		wordCount = st.WordCount
	}

	content, err := o.generator.Generate(ctx, kind, st.Transcript, target)
	metrics.ObserveBackend(metrics.BackendGenerator, err)
	if err != nil {
		return st, err
	}

	o.logger.Info("content generated",
		zap.String("email", st.UserEmail),
		zap.String("video_id", st.VideoID),
		zap.String("kind", string(kind)))
	return st.WithSelection(kind, wordCount).WithGenerated(kind, content), nil
}

// Translate translates the current generated content. A failure leaves the
// generated content and any earlier translation in place.
func (o *Orchestrator) Translate(ctx context.Context, st State, language string) (State, error) {
	if st.Screen != ScreenUser {
		return st, ErrWrongScreen
	}
	if !st.HasGenerated() {
		return st, ErrNoContent
	}

	out, err := o.translator.Translate(ctx, st.Generated, language)
	metrics.ObserveBackend(metrics.BackendTranslator, ignoreExpected(err))
	if err != nil {
		return st, err
	}
	return st.WithTranslated(language, out), nil
}

// Export renders the current generated content as a PDF.
func (o *Orchestrator) Export(st State) (State, *exporter.Document, error) {
	if st.Screen != ScreenUser {
		return st, nil, ErrWrongScreen
	}
	if !st.HasGenerated() {
		return st, nil, ErrNoContent
	}

	doc, err := o.exporter.Export(st.Generated, string(st.GeneratedKind))
	metrics.ObserveBackend(metrics.BackendExporter, err)
	if err != nil {
		return st, nil, err
	}
	return st.WithExport(), doc, nil
}

// Archive exports the current content and uploads it, returning a shareable URL.
func (o *Orchestrator) Archive(ctx context.Context, st State) (State, string, error) {
	if o.archiver == nil {
		return st, "", ErrArchiveDisabled
	}
	next, doc, err := o.Export(st)
	if err != nil {
		return st, "", err
	}

	name := st.VideoID + "-" + string(st.GeneratedKind) + "-" + exporter.Filename
	url, err := o.archiver.ArchiveDocument(ctx, name, doc.Data)
	metrics.ObserveBackend(metrics.BackendArchive, err)
	if err != nil {
		return st, "", err
	}
	return next, url, nil
}

// Save persists the current generated content, or its translation when
// translated is set. Nothing is written unless generation succeeded earlier.
func (o *Orchestrator) Save(ctx context.Context, st State, translated bool) (State, models.GeneratedContent, error) {
	if st.Screen != ScreenUser {
		return st, models.GeneratedContent{}, ErrWrongScreen
	}
	if !st.HasGenerated() {
		return st, models.GeneratedContent{}, ErrNoContent
	}

	record := models.GeneratedContent{
		Email:       st.UserEmail,
		VideoID:     st.VideoID,
		ContentType: st.GeneratedKind,
		Content:     st.Generated,
		Timestamp:   o.now(),
	}
	if translated {
		if st.Translated == "" {
			return st, models.GeneratedContent{}, ErrNoTranslation
		}
		lang := st.TranslatedLanguage
		record.Content = st.Translated
		record.Language = &lang
	}

	err := o.accounts.SaveContent(ctx, record)
	metrics.ObserveBackend(metrics.BackendStore, err)
	if err != nil {
		return st, models.GeneratedContent{}, err
	}
	return st, record, nil
}

func (o *Orchestrator) AdminUsers(ctx context.Context, st State) ([]models.UserSummary, error) {
	if st.Screen != ScreenAdmin {
		return nil, ErrWrongScreen
	}
	users, err := o.accounts.ListUsers(ctx)
	metrics.ObserveBackend(metrics.BackendStore, err)
	return users, err
}

func (o *Orchestrator) AdminContent(ctx context.Context, st State) ([]models.ContentSummary, error) {
	if st.Screen != ScreenAdmin {
		return nil, ErrWrongScreen
	}
	content, err := o.accounts.ListContent(ctx)
	metrics.ObserveBackend(metrics.BackendStore, err)
	return content, err
}

// AdminOverview is both admin listings together.
func (o *Orchestrator) AdminOverview(ctx context.Context, st State) (Overview, error) {
	users, err := o.AdminUsers(ctx, st)
	if err != nil {
		return Overview{}, err
	}
	content, err := o.AdminContent(ctx, st)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Users: users, Content: content}, nil
}

// ignoreExpected keeps caller mistakes out of the backend error count.
func ignoreExpected(err error) error {
	if errors.Is(err, store.ErrInvalidCredentials) || errors.Is(err, store.ErrAlreadyExists) ||
		errors.Is(err, translator.ErrUnsupportedLanguage) {
		return nil
	}
	return err
}
