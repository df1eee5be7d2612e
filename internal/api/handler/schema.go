package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type ackResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// --- Products ---

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// updateProductRequest is a partial update: absent fields stay untouched.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// --- Orders ---

type orderItemRequest struct {
	ProductRef   string  `json:"product_ref"    validate:"required"`
	Quantity     int     `json:"quantity"       validate:"required,min=1"`
	PriceAtOrder float64 `json:"price_at_order" validate:"gte=0"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total float64            `json:"total" validate:"gte=0"`
}
