package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// PlaceholderImageURL is the deterministic fallback for products without a
// stored image, derived from the product name.
func PlaceholderImageURL(name string) string {
	return "https://picsum.photos/seed/" + name + "/400"
}

func (r *PostgresRepository) ListCategories() ([]domain.Category, error) {
	rows, err := r.DB.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			continue
		}
		categories = append(categories, domain.Category{
			ID:   strconv.FormatInt(id, 10),
			Name: name,
		})
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) ListProducts() ([]domain.Product, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, price, COALESCE(category_id, 0), COALESCE(size, ''), COALESCE(unit, ''), COALESCE(image_url, '')
		FROM products
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var id, categoryID int64
		var p domain.Product
		if err := rows.Scan(&id, &p.Name, &p.Price, &categoryID, &p.Size, &p.Unit, &p.ImageURL); err != nil {
			continue
		}
		p.ID = strconv.FormatInt(id, 10)
		if categoryID != 0 {
			p.CategoryID = strconv.FormatInt(categoryID, 10)
		}
		if p.ImageURL == "" {
			p.ImageURL = PlaceholderImageURL(p.Name)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListOrders fetches all orders newest first, then their line items in a
// second query keyed by the fetched order ids, joined in memory.
func (r *PostgresRepository) ListOrders() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, customer_name, customer_whatsapp, delivery_address, status,
		       COALESCE(payment_status, ''), subtotal, created_at,
		       COALESCE(data_agendamento, ''), COALESCE(turno, ''), COALESCE(horario_agendamento, '')
		FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var orderIDs []int64
	for rows.Next() {
		var id int64
		var o domain.Order
		var payment string
		if err := rows.Scan(&id, &o.Customer.Name, &o.Customer.WhatsApp, &o.Customer.Address,
			&o.Status, &payment, &o.Total, &o.CreatedAt,
			&o.ScheduledDate, &o.Shift, &o.ScheduledTime); err != nil {
			continue
		}
		o.ID = strconv.FormatInt(id, 10)
		o.PaymentStatus = domain.PaymentStatus(payment)
		if o.PaymentStatus == "" {
			o.PaymentStatus = domain.PaymentPendente
		}
		o.Items = []domain.OrderItem{}
		orders = append(orders, o)
		orderIDs = append(orderIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return orders, nil
	}

	items, err := r.listOrderItems(orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if its, ok := items[orders[i].ID]; ok {
			orders[i].Items = its
		}
	}
	return orders, nil
}

func (r *PostgresRepository) listOrderItems(orderIDs []int64) (map[string][]domain.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT oi.order_id, p.id, p.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ANY($1)`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var orderID, productID int64
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &productID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			continue
		}
		item.ProductID = strconv.FormatInt(productID, 10)
		key := strconv.FormatInt(orderID, 10)
		items[key] = append(items[key], item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateOrderStatus(orderID string, status domain.OrderStatus) error {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderID, err)
	}
	result, err := r.DB.Exec("UPDATE orders SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PostgresRepository) UpdatePaymentStatus(orderID string, status domain.PaymentStatus) error {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderID, err)
	}
	result, err := r.DB.Exec("UPDATE orders SET payment_status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// InsertProduct creates the remote row and fills in the assigned id. The
// category id is stored only when the weak reference is numeric.
func (r *PostgresRepository) InsertProduct(p *domain.Product) error {
	var id int64
	err := r.DB.QueryRow(`
		INSERT INTO products (name, price, category_id, size, unit, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.Name, p.Price, categoryKey(p.CategoryID), nullable(p.Size), nullable(p.Unit), p.ImageURL).
		Scan(&id)
	if err != nil {
		return err
	}
	p.ID = strconv.FormatInt(id, 10)
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImageURL(p.Name)
	}
	return nil
}

func (r *PostgresRepository) UpdateProduct(p *domain.Product) error {
	id, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", p.ID, err)
	}
	result, err := r.DB.Exec(`
		UPDATE products
		SET name = $1, price = $2, category_id = $3, size = $4, unit = $5, image_url = $6
		WHERE id = $7`,
		p.Name, p.Price, categoryKey(p.CategoryID), nullable(p.Size), nullable(p.Unit), p.ImageURL, id)
	if err != nil {
		return err
	}
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImageURL(p.Name)
	}
	return requireRow(result)
}

func (r *PostgresRepository) DeleteProduct(productID string) error {
	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", productID, err)
	}
	result, err := r.DB.Exec("DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func categoryKey(categoryID string) interface{} {
	id, err := strconv.ParseInt(categoryID, 10, 64)
	if err != nil {
		return nil
	}
	return id
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
