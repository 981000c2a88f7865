package cosmic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go-restaurant-pos/models"
)

// GetProducts fetches all products with their category expanded.
// A not-found bucket query is an empty menu, not an error.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	data, err := c.findObjects(ctx, map[string]interface{}{"type": "products"}, "id,slug,title,metadata", 1)
	if errors.Is(err, ErrNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var resp struct {
		Objects []models.Product `json:"objects"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return resp.Objects, nil
}

// GetCategories fetches categories sorted by their display order. The sort
// is stable so ties keep the store's fetch order.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	data, err := c.findObjects(ctx, map[string]interface{}{"type": "categories"}, "id,slug,title,metadata", 0)
	if errors.Is(err, ErrNotFound) {
		return []models.Category{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	var resp struct {
		Objects []models.Category `json:"objects"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	sort.SliceStable(resp.Objects, func(i, j int) bool {
		return resp.Objects[i].SortOrder() < resp.Objects[j].SortOrder()
	})
	return resp.Objects, nil
}

// GetOrders fetches all orders newest first, ordered by the recorded order
// date with the record creation time as fallback.
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	data, err := c.findObjects(ctx, map[string]interface{}{"type": "orders"}, "id,slug,title,metadata,created_at", 1)
	if errors.Is(err, ErrNotFound) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	var resp struct {
		Objects []models.Order `json:"objects"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	sort.SliceStable(resp.Objects, func(i, j int) bool {
		return resp.Objects[i].Timestamp().After(resp.Objects[j].Timestamp())
	})
	return resp.Objects, nil
}

// GetTables fetches tables sorted by the number embedded in their title.
func (c *Client) GetTables(ctx context.Context) ([]models.Table, error) {
	data, err := c.findObjects(ctx, map[string]interface{}{"type": "tables"}, "id,slug,title,metadata", 0)
	if errors.Is(err, ErrNotFound) {
		return []models.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tables: %w", err)
	}

	var resp struct {
		Objects []models.Table `json:"objects"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch tables: %w", err)
	}
	sort.SliceStable(resp.Objects, func(i, j int) bool {
		return resp.Objects[i].Number() < resp.Objects[j].Number()
	})
	return resp.Objects, nil
}

// GetOrder fetches a single order by id. Returns ErrNotFound when the store
// has no such record.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	data, err := c.getObject(ctx, id, 1)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	var resp struct {
		Object models.Order `json:"object"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &resp.Object, nil
}

// InsertOrder persists a new order record and returns it as stored.
func (c *Client) InsertOrder(ctx context.Context, title string, metadata models.OrderMetadata) (*models.Order, error) {
	payload := map[string]interface{}{
		"title":    title,
		"type":     "orders",
		"metadata": metadata,
	}
	data, err := c.insertObject(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	var resp struct {
		Object models.Order `json:"object"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &resp.Object, nil
}

// userObject is the store representation of a staff account: the account
// name is the object title, everything else lives in metadata.
type userObject struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Metadata struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	} `json:"metadata"`
}

func (u userObject) toUser() models.User {
	name := u.Title
	email := u.Metadata.Email
	password := u.Metadata.Password
	phone := u.Metadata.Phone
	role := u.Metadata.Role
	return models.User{
		ID:       u.ID,
		Name:     &name,
		Email:    &email,
		Password: &password,
		Phone:    &phone,
		Role:     &role,
	}
}

// GetUserByEmail finds a staff account by its email metadata field.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := map[string]interface{}{"type": "users", "metadata.email": email}
	data, err := c.findObjects(ctx, query, "id,slug,title,metadata", 0)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	var resp struct {
		Objects []userObject `json:"objects"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if len(resp.Objects) == 0 {
		return nil, ErrNotFound
	}
	user := resp.Objects[0].toUser()
	return &user, nil
}

// InsertUser persists a staff account. The password must already be hashed.
func (c *Client) InsertUser(ctx context.Context, user models.User) (*models.User, error) {
	payload := map[string]interface{}{
		"title": *user.Name,
		"type":  "users",
		"metadata": map[string]interface{}{
			"email":    *user.Email,
			"password": *user.Password,
			"phone":    *user.Phone,
			"role":     *user.Role,
		},
	}
	data, err := c.insertObject(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var resp struct {
		Object userObject `json:"object"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	created := resp.Object.toUser()
	return &created, nil
}
