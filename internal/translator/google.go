package translator

import (
	"context"

	"cloud.google.com/go/translate"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleBackend uses the Cloud Translation v2 API with an API key.
type GoogleBackend struct {
	client *translate.Client
}

func NewGoogleBackend(ctx context.Context, apiKey string) (*GoogleBackend, error) {
	client, err := translate.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "create translate client")
	}
	return &GoogleBackend{client: client}, nil
}

func (b *GoogleBackend) Translate(ctx context.Context, text string, target language.Tag) (string, error) {
	// Source is left empty so the service detects it.
	resp, err := b.client.Translate(ctx, []string{text}, target, &translate.Options{Format: translate.Text})
	if err != nil {
		return "", errors.Wrap(err, "translate")
	}
	if len(resp) == 0 {
		return "", errors.New("translate returned no result")
	}
	return resp[0].Text, nil
}

func (b *GoogleBackend) Close() error {
	return b.client.Close()
}
