package upload

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"path"

	"github.com/umbra/uploader/internal/identity"
	"github.com/umbra/uploader/internal/storage"
)

// RecordStore is the persistence contract the orchestrators depend on.
// Implemented by Repository.
type RecordStore interface {
	Insert(ctx context.Context, rec *Record) error
	RemoveByTicketAndOwner(ctx context.Context, ticket string, ownerID int) (string, error)
}

// Service drives the upload and deletion lifecycle end-to-end.
type Service struct {
	store      RecordStore
	files      storage.Storage
	users      *identity.Resolver
	publicBase string
	audioBase  string
}

// NewService creates a new upload Service.
func NewService(store RecordStore, files storage.Storage, users *identity.Resolver, publicBase, audioBase string) *Service {
	return &Service{
		store:      store,
		files:      files,
		users:      users,
		publicBase: publicBase,
		audioBase:  audioBase,
	}
}

// Input carries one inbound file: its bytes, declared content type, and
// length, plus the optional audio metadata fields.
type Input struct {
	Reader      io.Reader
	ContentType string
	Size        int64
	Title       *string
	Author      *string
}

// Result is the outcome of a successful upload.
type Result struct {
	Kind        Kind
	PublicURL   string
	DeleteURL   string
	ContentType string
	Size        int64
	Title       *string
	Author      *string
}

// Upload runs one upload: classify the content type, generate the stored
// filename and deletion ticket, insert the record, then persist the bytes.
// The record is written before the file so that a crash in between leaves a
// recoverable orphan row, never a file without deletion capability.
func (s *Service) Upload(ctx context.Context, user *identity.User, in Input) (*Result, error) {
	mediaType, _, err := mime.ParseMediaType(in.ContentType)
	if err != nil || mediaType == "" {
		return nil, fmt.Errorf("content type %q: %w", in.ContentType, ErrInvalidUpload)
	}

	kind := KindOf(mediaType)

	// Independent draws: the filename is public, the ticket is not. Deriving
	// one from the other would leak deletion authority through the URL.
	stem, err := NewName()
	if err != nil {
		return nil, err
	}
	ticket, err := NewName()
	if err != nil {
		return nil, err
	}
	filename := stem + "." + extensionFor(mediaType)

	rec := &Record{
		DeletionID: ticket,
		OwnerID:    user.ID,
		Filename:   filename,
		Title:      in.Title,
		Author:     in.Author,
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}

	key := objectKey(user, kind, filename)
	if err := s.files.Save(ctx, key, in.Reader, in.Size, mediaType); err != nil {
		// The row already exists; an operator sweep can reconcile it. Surfaced,
		// never masked.
		return nil, fmt.Errorf("persist %s: %w: %w", key, ErrStorageUnavailable, err)
	}

	return &Result{
		Kind:        kind,
		PublicURL:   s.publicURL(user, kind, filename),
		DeleteURL:   fmt.Sprintf("%s/delete/%s?user_id=%d", s.publicBase, ticket, user.ID),
		ContentType: mediaType,
		Size:        in.Size,
		Title:       in.Title,
		Author:      in.Author,
	}, nil
}

// Delete runs one deletion: atomically remove the row matching ticket and
// owner, then remove the file from the owner's images directory. A failed
// file removal after the row is gone reports ErrStorageUnavailable so the
// inconsistency reaches an operator instead of being masked.
func (s *Service) Delete(ctx context.Context, ticket string, ownerID int) error {
	filename, err := s.store.RemoveByTicketAndOwner(ctx, ticket, ownerID)
	if err != nil {
		return err
	}

	owner, ok := s.users.ByID(ownerID)
	if !ok {
		return fmt.Errorf("owner %d no longer configured: %w", ownerID, ErrStorageUnavailable)
	}

	key := path.Join(owner.StorageDir, KindImage.Subdir(), filename)
	if err := s.files.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w: %w", key, ErrStorageUnavailable, err)
	}
	return nil
}

// publicURL builds the browser-facing URL for a stored file. Images pick a
// random base from the user's pool (they are mirrored across hosts); audio
// always uses the single canonical playback host; everything else uses the
// pool like images.
func (s *Service) publicURL(user *identity.User, kind Kind, filename string) string {
	if kind == KindAudio {
		return s.audioBase + "/" + filename
	}
	base := user.ResponseURLs[rand.Intn(len(user.ResponseURLs))]
	return base + "/" + filename
}

// objectKey computes the storage key for a file: the owner's subtree, the
// kind's subdirectory, and the stored filename.
func objectKey(user *identity.User, kind Kind, filename string) string {
	return path.Join(user.StorageDir, kind.Subdir(), filename)
}
