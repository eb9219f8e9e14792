package submission

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/quotation-service/internal/model"
)

var ErrFileRead = errors.New("failed to read attachment")

// Encoder turns attachments into base64 records. All files are read
// concurrently and the first failure aborts the whole batch.
type Encoder struct {
	limit int
}

// NewEncoder bounds the number of files read at once; limit <= 0 means no bound.
func NewEncoder(limit int) *Encoder {
	return &Encoder{limit: limit}
}

func (e *Encoder) Encode(ctx context.Context, files []model.Attachment) ([]model.EncodedFile, error) {
	out := make([]model.EncodedFile, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, file := range files {
		g.Go(func() error {
			encoded, err := encodeFile(ctx, file)
			if err != nil {
				return err
			}
			out[i] = encoded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeFile(ctx context.Context, file model.Attachment) (model.EncodedFile, error) {
	if err := ctx.Err(); err != nil {
		return model.EncodedFile{}, err
	}
	if file.Source == nil {
		return model.EncodedFile{}, fmt.Errorf("%w: %s: no content", ErrFileRead, file.Name)
	}

	rc, err := file.Source.Open()
	if err != nil {
		return model.EncodedFile{}, fmt.Errorf("%w: %s: %v", ErrFileRead, file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return model.EncodedFile{}, fmt.Errorf("%w: %s: %v", ErrFileRead, file.Name, err)
	}

	size := file.Size
	if size == 0 {
		size = int64(len(data))
	}
	return model.EncodedFile{
		Name:    file.Name,
		Type:    file.ContentType,
		Size:    size,
		Content: base64.StdEncoding.EncodeToString(data),
	}, nil
}
