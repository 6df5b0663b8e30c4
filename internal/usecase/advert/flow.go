package advert

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

// Stage is the position of the advertisement inside the composition flow.
type Stage int

const (
	StageEditing Stage = iota
	StagePreviewing
	StagePublishing
	StageDone
	StageFailed
)

// Backend is the slice of the API client the pipeline needs.
type Backend interface {
	GetProduct(ctx context.Context, id string) (product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (string, error)
	UpdateProduct(ctx context.Context, id string, p product.Product) error
	DeleteProductImages(ctx context.Context, imageIDs []string) error
	UploadProductImages(ctx context.Context, productID string, photos []product.StagedPhoto) error
}

// Draft is the not-yet-confirmed listing assembled by the edit step and
// rendered by the preview step.
type Draft struct {
	Product product.Product
	Photos  []product.Photo
	Deleted []string
}

func DefaultDraft() Draft {
	return Draft{Product: product.Product{ID: product.DraftID, IsNew: true}}
}

// Flow drives an advertisement through edit, preview and publish. One Flow
// instance lives for the process; the retained draft of an unfinished new
// advertisement survives across Begin calls until it is published.
type Flow struct {
	backend  Backend
	validate *validator.Validate

	stage     Stage
	productID string
	form      Form
	photos    []product.Photo
	deleted   []string

	draft    Draft
	hasDraft bool
}

func NewFlow(backend Backend) *Flow {
	validate := validator.New()
	_ = validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return ValidPrice(fl.Field().String())
	})

	return &Flow{
		backend:  backend,
		validate: validate,
		draft:    DefaultDraft(),
	}
}

// Begin enters the editing step. DraftID starts a new advertisement,
// restoring a retained draft when one exists; a real product id starts an
// edit session loaded fresh from the backend, discarding any stale draft.
func (f *Flow) Begin(ctx context.Context, productID string) error {
	f.stage = StageEditing
	f.productID = productID
	f.deleted = nil

	if productID == product.DraftID {
		if f.hasDraft && f.draft.Product.ID != product.DraftID {
			// leftover draft from an edit session, not ours to resume
			f.draft = DefaultDraft()
			f.hasDraft = false
		}
		if f.hasDraft {
			f.form = formFromProduct(f.draft.Product)
			f.photos = append([]product.Photo(nil), f.draft.Photos...)
		} else {
			f.form = Form{}
			f.photos = nil
		}
		return nil
	}

	p, err := f.backend.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	f.draft = DefaultDraft()
	f.hasDraft = false
	f.form = formFromProduct(p)
	f.photos = nil
	for _, img := range p.Images {
		f.photos = append(f.photos, product.ServerPhoto{ID: img.ID, Path: img.Path})
	}
	return nil
}

func (f *Flow) Stage() Stage { return f.stage }

func (f *Flow) Form() Form { return f.form }

func (f *Flow) Photos() []product.Photo {
	return append([]product.Photo(nil), f.photos...)
}

func (f *Flow) DeletedImageIDs() []string {
	return append([]string(nil), f.deleted...)
}

// AttachPhoto stages a locally picked photo. Over-limit and over-size
// photos are rejected without touching the staged list; a duplicate name is
// silently skipped.
func (f *Flow) AttachPhoto(photo product.StagedPhoto) error {
	if f.stage != StageEditing {
		return ErrNotEditing
	}
	if len(f.photos) >= product.MaxPhotos {
		return product.ErrTooManyPhotos
	}
	if photo.Size > product.MaxPhotoBytes {
		return product.ErrPhotoTooLarge
	}
	for _, ph := range f.photos {
		if ph.PhotoName() == photo.Name {
			return nil
		}
	}

	f.photos = append(f.photos, photo)
	return nil
}

// RemovePhoto drops a photo from the staged list. Removing a server-stored
// photo during an edit session records its id for the deferred bulk delete
// at publish time; a never-uploaded photo is simply dropped.
func (f *Flow) RemovePhoto(name string) error {
	if f.stage != StageEditing {
		return ErrNotEditing
	}

	kept := f.photos[:0]
	for _, ph := range f.photos {
		if ph.PhotoName() != name {
			kept = append(kept, ph)
			continue
		}
		if sp, ok := ph.(product.ServerPhoto); ok && f.productID != product.DraftID {
			f.markDeleted(sp.ID)
		}
	}
	f.photos = kept
	return nil
}

func (f *Flow) markDeleted(imageID string) {
	for _, id := range f.deleted {
		if id == imageID {
			return
		}
	}
	f.deleted = append(f.deleted, imageID)
}

// Submit validates the form, assembles the canonical draft product and
// moves to the preview step. It never reaches the network.
func (f *Flow) Submit(form Form) error {
	if f.stage != StageEditing {
		return ErrNotEditing
	}
	if len(f.photos) == 0 {
		return product.ErrNoPhotos
	}

	form.normalize()
	if err := f.validate.Struct(form); err != nil {
		return err
	}

	cents, err := ParsePrice(form.Price)
	if err != nil {
		return err
	}

	active := true
	f.form = form
	f.draft = Draft{
		Product: product.Product{
			ID:             f.productID,
			Name:           form.Name,
			Description:    form.Description,
			IsNew:          form.Condition == ConditionNew,
			Price:          cents,
			IsActive:       &active,
			AcceptTrade:    form.AcceptTrade,
			PaymentMethods: product.MethodsFromKeys(form.PaymentMethods),
		},
		Photos:  append([]product.Photo(nil), f.photos...),
		Deleted: append([]string(nil), f.deleted...),
	}
	f.hasDraft = true
	f.stage = StagePreviewing
	return nil
}

// Preview returns the draft the preview step renders.
func (f *Flow) Preview() (Draft, error) {
	if f.stage != StagePreviewing {
		return Draft{}, ErrNotPreviewing
	}
	return f.draft, nil
}

// BackToEdit returns to the edit step with the draft intact, either from
// the preview or after a failed publish.
func (f *Flow) BackToEdit() error {
	if f.stage != StagePreviewing && f.stage != StageFailed {
		return ErrNotPreviewing
	}
	f.stage = StageEditing
	return nil
}

// Publish sends the draft to the backend and returns the resolved product
// id. Metadata goes first as JSON; deferred image deletions and the
// multipart upload of new photos follow, each skipped when it has nothing
// to do. Any failure leaves the draft intact for a retry from the edit
// step.
func (f *Flow) Publish(ctx context.Context) (string, error) {
	if f.stage != StagePreviewing {
		return "", ErrNotPreviewing
	}
	f.stage = StagePublishing

	wasNew := f.draft.Product.ID == product.DraftID
	productID := f.draft.Product.ID

	if wasNew {
		id, err := f.backend.CreateProduct(ctx, f.draft.Product)
		if err != nil {
			f.stage = StageFailed
			return "", err
		}
		productID = id
	} else {
		if err := f.backend.UpdateProduct(ctx, productID, f.draft.Product); err != nil {
			f.stage = StageFailed
			return "", err
		}
		if len(f.draft.Deleted) > 0 {
			if err := f.backend.DeleteProductImages(ctx, f.draft.Deleted); err != nil {
				f.stage = StageFailed
				return "", err
			}
		}
	}

	if staged := product.StagedPhotos(f.draft.Photos); len(staged) > 0 {
		if err := f.backend.UploadProductImages(ctx, productID, staged); err != nil {
			f.stage = StageFailed
			return "", err
		}
	}

	if wasNew {
		f.draft = DefaultDraft()
		f.hasDraft = false
		f.form = Form{}
		f.photos = nil
		f.deleted = nil
	}
	f.stage = StageDone
	return productID, nil
}
