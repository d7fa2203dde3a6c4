package transport

// ListPropertiesQuery are the public browse filters. Numeric fields arrive
// as strings so malformed values can be rejected explicitly instead of
// binding to zero.
type ListPropertiesQuery struct {
	City     string `form:"city"`
	Type     string `form:"type"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	Bedrooms string `form:"bedrooms"`
}

// CreatePropertyRequest is the payload for listing a new property.
type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description" validate:"required,min=10"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	Type         string   `json:"type" validate:"required,oneof=sale rent"`
	PropertyType string   `json:"propertyType" validate:"omitempty,oneof=apartment house villa office land"`
	Bedrooms     int      `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	Bathrooms    int      `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	Area         int      `json:"area" validate:"omitempty,gte=0"`
	Furnished    bool     `json:"furnished"`
	City         string   `json:"city" validate:"required,min=2,max=100"`
	District     string   `json:"district" validate:"omitempty,max=100"`
	Address      string   `json:"address" validate:"omitempty,max=300"`
	Lat          *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng          *float64 `json:"lng" validate:"omitempty,longitude"`
	Images       []string `json:"images" validate:"omitempty,max=20,dive,max=500"`
	Amenities    []string `json:"amenities" validate:"omitempty,max=50,dive,max=100"`
}

// UploadURLRequest asks for a presigned upload slot for one image.
type UploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required"`
	FileSize    int64  `json:"fileSize" validate:"required,gt=0"`
}

// UploadURLResponse carries the presigned URL and the key to store on the
// property record.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt string `json:"expiresAt"`
}

// OwnerResponse is the public slice of a property's owner.
type OwnerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PropertyResponse is the shaped public representation of a property.
// Image paths are absolute, isLiked is derived for the current viewer, and
// the raw like relation never appears here.
type PropertyResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        int64         `json:"price"`
	Type         string        `json:"type"`
	PropertyType string        `json:"propertyType,omitempty"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    int           `json:"bathrooms"`
	Area         int           `json:"area"`
	Furnished    bool          `json:"furnished"`
	City         string        `json:"city"`
	District     string        `json:"district,omitempty"`
	Address      string        `json:"address,omitempty"`
	Lat          *float64      `json:"lat,omitempty"`
	Lng          *float64      `json:"lng,omitempty"`
	Images       []string      `json:"images"`
	Amenities    []string      `json:"amenities"`
	Approved     bool          `json:"approved"`
	Status       string        `json:"status"`
	Featured     bool          `json:"featured"`
	Owner        OwnerResponse `json:"owner"`
	IsLiked      bool          `json:"isLiked"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// ToggleLikeResponse reports the state after a like toggle.
type ToggleLikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// LikesResponse is the "who liked this" view for a property.
type LikesResponse struct {
	Count int             `json:"count"`
	Users []OwnerResponse `json:"users"`
}

// AdminListQuery drives the paginated admin property screen.
type AdminListQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
	Search string `form:"search"`
	Status string `form:"status"`
}

// AdminPropertiesResponse is the paginated admin listing envelope.
type AdminPropertiesResponse struct {
	Properties  []PropertyResponse `json:"properties"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	Total       int                `json:"total"`
}
