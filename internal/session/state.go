package session

import (
	"github.com/AnshRaj112/ytsummary-backend/internal/generator"
	"github.com/AnshRaj112/ytsummary-backend/internal/models"
)

// Screen is the top-level view a session is on.
type Screen string

const (
	ScreenUnauthenticated Screen = "unauthenticated"
	ScreenUser            Screen = "user"
	ScreenAdmin           Screen = "admin"
)

// AuthMode is the sub-mode of the unauthenticated screen.
type AuthMode string

const (
	ModeLogin      AuthMode = "Login"
	ModeSignup     AuthMode = "Sign Up"
	ModeAdminLogin AuthMode = "Admin Login"
)

func (m AuthMode) Valid() bool {
	switch m {
	case ModeLogin, ModeSignup, ModeAdminLogin:
		return true
	}
	return false
}

// State is everything one interactive session remembers between requests.
// Transitions return a modified copy and never touch the receiver.
type State struct {
	Screen        Screen   `json:"screen"`
	Mode          AuthMode `json:"mode,omitempty"`
	LoggedIn      bool     `json:"logged_in"`
	UserEmail     string   `json:"user_email,omitempty"`
	AdminLoggedIn bool     `json:"admin_logged_in"`

	VideoID    string `json:"video_id,omitempty"`
	Transcript string `json:"transcript,omitempty"`

	SelectedKind models.ContentKind `json:"selected_kind"`
	WordCount    int                `json:"word_count"`

	Generated     string             `json:"generated,omitempty"`
	GeneratedKind models.ContentKind `json:"generated_kind,omitempty"`

	Translated         string `json:"translated,omitempty"`
	TranslatedLanguage string `json:"translated_language,omitempty"`

	ExportReady bool `json:"export_ready"`
}

// New is the state of a fresh session: the login form.
func New() State {
	return State{
		Screen:       ScreenUnauthenticated,
		Mode:         ModeLogin,
		SelectedKind: models.KindSummary,
		WordCount:    generator.DefaultWordCount,
	}
}

func (s State) WithMode(mode AuthMode) State {
	s.Mode = mode
	return s
}

func (s State) LoggedInAs(email string) State {
	n := New()
	n.Screen = ScreenUser
	n.Mode = ""
	n.LoggedIn = true
	n.UserEmail = email
	return n
}

// Registered sends the session back to the login form without logging in.
func (s State) Registered() State {
	return New()
}

// AsAdmin moves the session to the admin view.
func (s State) AsAdmin() State {
	n := New()
	n.Screen = ScreenAdmin
	n.Mode = ""
	n.AdminLoggedIn = true
	return n
}

func (s State) LoggedOut() State {
	return New()
}

// WithVideo records a newly fetched transcript. Output derived from the
// previous video is dropped.
func (s State) WithVideo(videoID, transcript string) State {
	s.VideoID = videoID
	s.Transcript = transcript
	return s.clearDerived()
}

// WithoutVideo forgets the current video after a link that failed to resolve,
// so nothing can be generated from it. Output already generated is kept.
func (s State) WithoutVideo() State {
	s.VideoID = ""
	s.Transcript = ""
	return s
}

func (s State) WithSelection(kind models.ContentKind, wordCount int) State {
	s.SelectedKind = kind
	s.WordCount = wordCount
	return s
}

// WithGenerated stores new content and invalidates any translation and export
// made from the previous content.
func (s State) WithGenerated(kind models.ContentKind, content string) State {
	s = s.clearDerived()
	s.Generated = content
	s.GeneratedKind = kind
	return s
}

func (s State) WithTranslated(language, content string) State {
	s.Translated = content
	s.TranslatedLanguage = language
	return s
}

func (s State) WithExport() State {
	s.ExportReady = true
	return s
}

func (s State) HasTranscript() bool { return s.VideoID != "" && s.Transcript != "" }

func (s State) HasGenerated() bool { return s.Generated != "" }

func (s State) clearDerived() State {
	s.Generated = ""
	s.GeneratedKind = ""
	s.Translated = ""
	s.TranslatedLanguage = ""
	s.ExportReady = false
	return s
}
