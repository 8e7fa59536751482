package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candlepilots/planguard/pkg/entitlements"
	"github.com/candlepilots/planguard/pkg/pg"
	"github.com/candlepilots/planguard/pkg/plan"
)

// resourceTables maps a resource kind to its table. Table names come from
// this fixed map only, never from request input.
var resourceTables = map[plan.Resource]string{
	plan.ResourceRecipes:   "recipes",
	plan.ResourceOrders:    "orders",
	plan.ResourceCustomers: "customers",
	plan.ResourceProducts:  "products",
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (BusinessWithSubscription, error) {
	const query = `
		SELECT b.id, b.owner_id, b.name, b.created_at,
		       s.business_id, s.tier, s.status, s.created_at, s.updated_at
		FROM businesses b
		LEFT JOIN subscriptions s ON s.business_id = b.id
		WHERE b.owner_id = $1`

	var (
		b      Business
		subID  *uuid.UUID
		tier   *string
		status *string
		subCrt *time.Time
		subUpd *time.Time
	)
	err := s.pool.QueryRow(ctx, query, ownerID).Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.CreatedAt,
		&subID, &tier, &status, &subCrt, &subUpd,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return BusinessWithSubscription{}, ErrBusinessNotFound
		}
		return BusinessWithSubscription{}, err
	}

	result := BusinessWithSubscription{Business: b}
	if subID != nil {
		result.Subscription = &Subscription{
			BusinessID: *subID,
			Tier:       plan.Tier(*tier),
			Status:     entitlements.SubscriptionStatus(*status),
			CreatedAt:  *subCrt,
			UpdatedAt:  *subUpd,
		}
	}
	return result, nil
}

func (s *PostgresStore) CountResources(ctx context.Context, businessID uuid.UUID, kind plan.Resource) (int64, error) {
	table, ok := resourceTables[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", plan.ErrUnknownResource, kind)
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE business_id = $1`, table)

	var count int64
	if err := s.pool.QueryRow(ctx, query, businessID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostgresStore) CreateBusiness(ctx context.Context, b *Business) error {
	const query = `
		INSERT INTO businesses (id, owner_id, name, created_at)
		VALUES ($1, $2, $3, $4)`

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, query, b.ID, b.OwnerID, b.Name, b.CreatedAt)
	if pg.IsDuplicateKeyError(err) {
		return errors.Join(ErrDuplicateOwner, err)
	}
	return err
}

func (s *PostgresStore) UpsertSubscription(ctx context.Context, sub *Subscription) error {
	const query = `
		INSERT INTO subscriptions (business_id, tier, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (business_id)
		DO UPDATE SET tier = EXCLUDED.tier, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	_, err := s.pool.Exec(ctx, query, sub.BusinessID, sub.Tier, sub.Status, sub.CreatedAt, sub.UpdatedAt)
	if pg.IsForeignKeyViolationError(err) {
		return errors.Join(ErrBusinessNotFound, err)
	}
	return err
}

func (s *PostgresStore) InsertResource(ctx context.Context, res *Resource) error {
	table, ok := resourceTables[res.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", plan.ErrUnknownResource, res.Kind)
	}

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, business_id, name, created_at)
		VALUES ($1, $2, $3, $4)`, table)

	_, err := s.pool.Exec(ctx, query, res.ID, res.BusinessID, res.Name, res.CreatedAt)
	if pg.IsForeignKeyViolationError(err) {
		return errors.Join(ErrBusinessNotFound, err)
	}
	return err
}
