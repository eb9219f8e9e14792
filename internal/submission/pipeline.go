package submission

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nurpe/quotation-service/internal/model"
)

type Sender interface {
	Send(ctx context.Context, payload model.Payload) error
}

// Pipeline encodes the attachments of a completed form and hands the
// resulting payload to the sender.
type Pipeline struct {
	encoder *Encoder
	sender  Sender
	log     zerolog.Logger
}

func NewPipeline(encoder *Encoder, sender Sender, log zerolog.Logger) *Pipeline {
	return &Pipeline{encoder: encoder, sender: sender, log: log}
}

func (p *Pipeline) Submit(ctx context.Context, form model.FormState, variant model.Variant) error {
	files, err := p.encoder.Encode(ctx, form.Files)
	if err != nil {
		return err
	}

	payload := model.NewPayload(form, files, variant.Consent)
	p.log.Debug().
		Int("files", len(files)).
		Str("locale", variant.Locale).
		Msg("sending quotation request")
	return p.sender.Send(ctx, payload)
}
