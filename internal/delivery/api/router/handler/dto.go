package handler

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// UserResponse is the outward representation of a user account.
// The password hash is never serialized.
type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	AvatarURL string            `json:"avatarUrl,omitempty"`
	Role      string            `json:"role"`
	Addresses []AddressResponse `json:"addresses"`
	Wishlist  []uuid.UUID       `json:"wishlist"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// AddressResponse is the outward representation of a saved address.
type AddressResponse struct {
	ID        uuid.UUID `json:"id"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	Country   string    `json:"country"`
	IsDefault bool      `json:"isDefault"`
}

// ProductResponse is the outward representation of a catalog item.
type ProductResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Images      []string         `json:"images"`
	Category    string           `json:"category"`
	Stock       int              `json:"stock"`
	Ratings     float64          `json:"ratings"`
	NumReviews  int              `json:"numReviews"`
	Reviews     []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ReviewResponse is the outward representation of a product review.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderResponse is the outward representation of a placed order.
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"userId"`
	UserName        string                  `json:"userName,omitempty"`
	UserEmail       string                  `json:"userEmail,omitempty"`
	Lines           []OrderLineResponse     `json:"orderItems"`
	ShippingAddress ShippingAddressPayload  `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentStatus   string                  `json:"paymentStatus"`
	OrderStatus     string                  `json:"orderStatus"`
	ItemsPrice      float64                 `json:"itemsPrice"`
	ShippingPrice   float64                 `json:"shippingPrice"`
	TaxPrice        float64                 `json:"taxPrice"`
	TotalPrice      float64                 `json:"totalPrice"`
	PaidAt          *time.Time              `json:"paidAt,omitempty"`
	DeliveredAt     *time.Time              `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// OrderLineResponse is one purchased line within an order response.
type OrderLineResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Quantity  int       `json:"quantity"`
}

// ShippingAddressPayload is the checkout destination, used for both
// requests and responses.
type ShippingAddressPayload struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

func newUserResponse(user *entity.User) UserResponse {
	addresses := make([]AddressResponse, 0, len(user.Addresses))
	for i := range user.Addresses {
		addresses = append(addresses, newAddressResponse(&user.Addresses[i]))
	}

	wishlist := user.Wishlist
	if wishlist == nil {
		wishlist = []uuid.UUID{}
	}

	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Role:      user.Role.String(),
		Addresses: addresses,
		Wishlist:  wishlist,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func newUserResponseList(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, newUserResponse(user))
	}

	return out
}

func newAddressResponse(address *entity.Address) AddressResponse {
	return AddressResponse{
		ID:        address.ID,
		Street:    address.Street,
		City:      address.City,
		State:     address.State,
		ZipCode:   address.ZipCode,
		Country:   address.Country,
		IsDefault: address.IsDefault,
	}
}

func newAddressResponseList(addresses []entity.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, newAddressResponse(&addresses[i]))
	}

	return out
}

func newProductResponse(product *entity.Product) ProductResponse {
	reviews := make([]ReviewResponse, 0, len(product.Reviews))
	for i := range product.Reviews {
		review := &product.Reviews[i]
		reviews = append(reviews, ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			Name:      review.Name,
			Avatar:    review.AvatarURL,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	images := product.Images
	if images == nil {
		images = []string{}
	}

	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Images:      images,
		Category:    product.Category.String(),
		Stock:       product.Stock,
		Ratings:     product.Ratings,
		NumReviews:  product.NumReviews,
		Reviews:     reviews,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func newProductResponseList(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, newProductResponse(product))
	}

	return out
}

func newOrderResponse(order *entity.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}

	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		UserName:  order.UserName,
		UserEmail: order.UserEmail,
		Lines:     lines,
		ShippingAddress: ShippingAddressPayload{
			Address:    order.ShippingAddress.Address,
			City:       order.ShippingAddress.City,
			PostalCode: order.ShippingAddress.PostalCode,
			Country:    order.ShippingAddress.Country,
		},
		PaymentMethod: string(order.PaymentMethod),
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
		ItemsPrice:    order.ItemsPrice,
		ShippingPrice: order.ShippingPrice,
		TaxPrice:      order.TaxPrice,
		TotalPrice:    order.TotalPrice,
		PaidAt:        order.PaidAt,
		DeliveredAt:   order.DeliveredAt,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func newOrderResponseList(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, newOrderResponse(order))
	}

	return out
}
