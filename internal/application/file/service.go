package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/pkg/clock"
	"github.com/wcontent-api/internal/pkg/id"
)

// DefaultURLTTL is how long a presigned resume link stays valid.
const DefaultURLTTL = 7 * 24 * time.Hour

// sniffLen is how much of the upload is read to detect its type.
const sniffLen = 3072

// resumeTypes lists the accepted document types in detection order.
var resumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/rtf",
	"text/plain",
}

type ResumeInput struct {
	OwnerID  string
	Filename string
	Reader   io.Reader
}

type Service interface {
	UploadResume(ctx context.Context, in ResumeInput) (*domain.UploadedFile, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type ServiceDeps struct {
	Objects objectStore
	URLTTL  time.Duration
	Clock   clock.Clocker
}

type service struct {
	objects objectStore
	urlTTL  time.Duration
	clock   clock.Clocker
}

func NewService(deps ServiceDeps) Service {
	s := &service{objects: deps.Objects, urlTTL: deps.URLTTL, clock: deps.Clock}
	if s.urlTTL <= 0 {
		s.urlTTL = DefaultURLTTL
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	return s
}

// UploadResume stores the file under resumes/{owner}/{ulid}-{name} and returns
// a presigned download link for it.
func (s *service) UploadResume(ctx context.Context, in ResumeInput) (*domain.UploadedFile, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, fmt.Errorf("userId is required: %w", domain.ErrBadRequest)
	}
	if in.Reader == nil {
		return nil, fmt.Errorf("file is required: %w", domain.ErrBadRequest)
	}
	name := sanitizeFilename(in.Filename)

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Reader, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("file is empty: %w", domain.ErrBadRequest)
	}
	head = head[:n]
	contentType, ok := resumeType(head, name)
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q: %w", mimetype.Detect(head).String(), domain.ErrBadRequest)
	}

	key := fmt.Sprintf("resumes/%s/%s-%s", sanitizeFilename(in.OwnerID), id.New(), name)
	hasher := sha256.New()
	counter := &countingWriter{}
	body := io.MultiReader(bytes.NewReader(head), in.Reader)
	tee := io.TeeReader(body, io.MultiWriter(hasher, counter))
	if err := s.objects.Upload(ctx, key, tee, contentType); err != nil {
		return nil, err
	}
	url, err := s.objects.PresignedURL(ctx, key, s.urlTTL)
	if err != nil {
		if derr := s.objects.Delete(ctx, key); derr != nil {
			slog.WarnContext(ctx, "remove orphaned resume", "key", key, "err", derr)
		}
		return nil, err
	}
	return &domain.UploadedFile{
		Key:         key,
		Name:        name,
		ContentType: contentType,
		Size:        counter.n,
		Hash:        hex.EncodeToString(hasher.Sum(nil)),
		URL:         url,
		OwnerID:     in.OwnerID,
		UploadedAt:  s.clock.Now().UTC(),
	}, nil
}

// resumeType sniffs the leading bytes; the client's declared type is ignored.
// Legacy Word files often sniff as generic OLE storage, so the .doc extension
// settles those.
func resumeType(head []byte, name string) (string, bool) {
	detected := mimetype.Detect(head)
	for m := detected; m != nil; m = m.Parent() {
		for _, t := range resumeTypes {
			if m.Is(t) {
				return t, true
			}
		}
	}
	if detected.Is("application/x-ole-storage") && strings.EqualFold(path.Ext(name), ".doc") {
		return "application/msword", true
	}
	return "", false
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// sanitizeFilename strips directory components and keeps only alphanumerics,
// dot, dash and underscore so the name is safe inside an S3 key.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." && result != ".." {
		return result
	}
	return "_"
}
