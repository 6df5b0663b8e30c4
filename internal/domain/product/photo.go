package product

// Photo is a product image inside the advertisement composition pipeline.
// Its origin is structural: a ServerPhoto is already persisted on the
// backend, a StagedPhoto was picked locally and never uploaded.
type Photo interface {
	PhotoName() string
	photo()
}

// ServerPhoto references an image the backend already stores.
type ServerPhoto struct {
	ID   string
	Path string
}

func (p ServerPhoto) PhotoName() string { return p.ID }

func (ServerPhoto) photo() {}

// StagedPhoto is a locally selected file that has not been uploaded.
type StagedPhoto struct {
	Name     string
	URI      string
	MIMEType string
	Size     int64
}

func (p StagedPhoto) PhotoName() string { return p.Name }

func (StagedPhoto) photo() {}

// StagedPhotos filters the staged (never uploaded) photos out of a mixed
// photo list, in order.
func StagedPhotos(photos []Photo) []StagedPhoto {
	var staged []StagedPhoto
	for _, ph := range photos {
		if sp, ok := ph.(StagedPhoto); ok {
			staged = append(staged, sp)
		}
	}
	return staged
}
