package product

// DraftID marks a product that does not exist on the backend yet.
const DraftID = "0"

const (
	MaxPhotos     = 3
	MaxPhotoBytes = 8 << 20
)

// ProductImage is a server-stored image descriptor. Paths are relative and
// resolved against the API base URL by whoever renders them.
type ProductImage struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// UserSummary is the seller summary embedded in a fetched product.
type UserSummary struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Tel    string `json:"tel,omitempty"`
}

type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          int64          `json:"price"`
	IsNew          bool           `json:"is_new"`
	IsActive       *bool          `json:"is_active,omitempty"`
	AcceptTrade    bool           `json:"accept_trade"`
	PaymentMethods PaymentMethods `json:"payment_methods,omitempty"`
	Images         []ProductImage `json:"product_images,omitempty"`
	User           *UserSummary   `json:"user,omitempty"`
	UserID         string         `json:"user_id,omitempty"`
}

// Active reports whether the listing is active. Listings fetched from the
// public catalog omit the flag, which means active.
func (p Product) Active() bool {
	return p.IsActive == nil || *p.IsActive
}
