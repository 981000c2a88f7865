package controllers

import (
	"go-restaurant-pos/cart"
	"go-restaurant-pos/cosmic"
	"go-restaurant-pos/notifications"

	"github.com/go-playground/validator"
)

var (
	store    *cosmic.Client
	hub      *notifications.Hub
	sessions = cart.NewSessions()
	validate = validator.New()
)

// Init wires the controllers to the store gateway and the notification hub.
// Called once from main before the routes are registered.
func Init(client *cosmic.Client, notificationHub *notifications.Hub) {
	store = client
	hub = notificationHub
}
