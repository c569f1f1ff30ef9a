package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"
)

// AssetRepository manages fixed assets of the venue.
type AssetRepository interface {
	CreateAsset(executor SQLExecutor, asset *models.Asset) (int64, error)
	GetAssetByID(id int64) (*models.Asset, error)
	GetAssets(limit, offset int) ([]models.Asset, int, error)
	UpdateAsset(executor SQLExecutor, asset *models.Asset) error
	DeleteAsset(executor SQLExecutor, id int64) error
}

type assetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new instance of AssetRepository.
func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) CreateAsset(executor SQLExecutor, asset *models.Asset) (int64, error) {
	var id int64
	query := `INSERT INTO assets (name, asset_type, purchase_date, quantity, value, condition, location, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id`
	err := executor.QueryRow(query,
		asset.Name, asset.AssetType, asset.PurchaseDate, asset.Quantity, asset.Value,
		asset.Condition, asset.Location,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating asset: %v", ErrDatabaseError, err)
	}
	return id, nil
}

func (r *assetRepository) GetAssetByID(id int64) (*models.Asset, error) {
	asset := &models.Asset{}
	query := `SELECT id, name, asset_type, TO_CHAR(purchase_date, 'YYYY-MM-DD'), quantity, value,
	                 condition, location, created_at
	          FROM assets WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&asset.ID, &asset.Name, &asset.AssetType, &asset.PurchaseDate, &asset.Quantity,
		&asset.Value, &asset.Condition, &asset.Location, &asset.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting asset %d: %v", ErrDatabaseError, id, err)
	}
	return asset, nil
}

func (r *assetRepository) GetAssets(limit, offset int) ([]models.Asset, int, error) {
	assets := []models.Asset{}
	total := 0

	query := `SELECT id, name, asset_type, TO_CHAR(purchase_date, 'YYYY-MM-DD'), quantity, value,
	                 condition, location, created_at, COUNT(*) OVER() AS total_count
	          FROM assets ORDER BY name ASC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying assets: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		asset := models.Asset{}
		err := rows.Scan(
			&asset.ID, &asset.Name, &asset.AssetType, &asset.PurchaseDate, &asset.Quantity,
			&asset.Value, &asset.Condition, &asset.Location, &asset.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning asset: %v", ErrDatabaseError, err)
		}
		assets = append(assets, asset)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating asset rows: %v", ErrDatabaseError, err)
	}
	return assets, total, nil
}

func (r *assetRepository) UpdateAsset(executor SQLExecutor, asset *models.Asset) error {
	result, err := executor.Exec(
		`UPDATE assets SET name = $1, asset_type = $2, purchase_date = $3, quantity = $4,
		        value = $5, condition = $6, location = $7
		 WHERE id = $8`,
		asset.Name, asset.AssetType, asset.PurchaseDate, asset.Quantity, asset.Value,
		asset.Condition, asset.Location, asset.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating asset %d: %v", ErrDatabaseError, asset.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected updating asset %d: %v", ErrDatabaseError, asset.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assetRepository) DeleteAsset(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting asset %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected deleting asset %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
