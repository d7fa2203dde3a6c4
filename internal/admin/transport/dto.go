package transport

// ListUsersQuery drives the paginated admin user screen.
type ListUsersQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
	Search string `form:"search"`
	Role   string `form:"role"`
}

// UserResponse is the admin view of a user. The credential hash is excluded
// at the query level, not stripped after the fact.
type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// UsersResponse is the paginated admin user listing envelope.
type UsersResponse struct {
	Users       []UserResponse `json:"users"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int            `json:"total"`
}

// PropertySummaryResponse is the compact property row on the dashboard.
type PropertySummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	City      string `json:"city"`
	Price     int64  `json:"price"`
	Approved  bool   `json:"approved"`
	Status    string `json:"status"`
	OwnerName string `json:"ownerName"`
	CreatedAt string `json:"createdAt"`
}

// DashboardResponse aggregates platform counts for the admin overview.
type DashboardResponse struct {
	TotalUsers         int                       `json:"totalUsers"`
	TotalProperties    int                       `json:"totalProperties"`
	ApprovedProperties int                       `json:"approvedProperties"`
	PendingProperties  int                       `json:"pendingProperties"`
	TotalLikes         int                       `json:"totalLikes"`
	RecentUsers        []UserResponse            `json:"recentUsers"`
	RecentProperties   []PropertySummaryResponse `json:"recentProperties"`
}
