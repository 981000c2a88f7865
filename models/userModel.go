package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name" validate:"required,min=2,max=100"`
	Password     *string   `json:"password" validate:"required,min=6"`
	Email        *string   `json:"email" validate:"email,required"`
	Phone        *string   `json:"phone" validate:"required"`
	Role         *string   `json:"role" validate:"required,eq=ADMIN|eq=WAITER|eq=KITCHEN|eq=CASHIER"`
	Token        *string   `json:"token"`
	RefreshToken *string   `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}
