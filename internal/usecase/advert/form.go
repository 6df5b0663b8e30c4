package advert

import (
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
)

const (
	ConditionNew  = "new"
	ConditionUsed = "used"
)

// Form is the editable advertisement form. Price stays a display string
// until submit, when it is parsed into minor units.
type Form struct {
	Name           string   `validate:"required,min=3"`
	Description    string   `validate:"required,min=3"`
	Condition      string   `validate:"required,oneof=new used"`
	Price          string   `validate:"required,price"`
	AcceptTrade    bool
	PaymentMethods []string `validate:"min=1,max=5,dive,oneof=boleto pix cash card deposit"`
}

// ToggleCondition implements the exclusive condition radios: selecting one
// clears the other, and re-selecting the current one clears it.
func (f *Form) ToggleCondition(condition string) {
	if f.Condition == condition {
		f.Condition = ""
		return
	}
	f.Condition = condition
}

func (f *Form) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = strings.TrimSpace(f.Price)
}

func formFromProduct(p product.Product) Form {
	condition := ConditionUsed
	if p.IsNew {
		condition = ConditionNew
	}

	price := ""
	if p.Price > 0 {
		price = FormatPrice(p.Price)
	}

	return Form{
		Name:           p.Name,
		Description:    p.Description,
		Condition:      condition,
		Price:          price,
		AcceptTrade:    p.AcceptTrade,
		PaymentMethods: p.PaymentMethods.Keys(),
	}
}

// StagePhotoFromFile builds a staged photo descriptor for a local file,
// detecting its size and MIME type. The 8MB limit is enforced at attach
// time, not here.
func StagePhotoFromFile(path string) (product.StagedPhoto, error) {
	info, err := os.Stat(path)
	if err != nil {
		return product.StagedPhoto{}, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))

	return product.StagedPhoto{
		Name:     "image_" + uuid.NewString() + filepath.Ext(path),
		URI:      path,
		MIMEType: mimeType,
		Size:     info.Size(),
	}, nil
}
