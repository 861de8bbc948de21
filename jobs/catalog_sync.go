// jobs/catalog_sync.go
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"api-bloommarbella-go/models"
	"api-bloommarbella-go/nieuwkoop"
	"api-bloommarbella-go/utils"

	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const TaskCatalogSync = "catalog:sync"

// FullSyncEpoch is the cutoff used to force every item to be treated as
// changed. A full resync is just an incremental sync from here.
var FullSyncEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type CatalogSyncPayload struct {
	Full bool `json:"full"`
}

// SyncResult is the batch summary returned to the admin endpoint.
type SyncResult struct {
	NewProducts     int       `json:"newProducts"`
	UpdatedProducts int       `json:"updatedProducts"`
	Errors          int       `json:"errors"`
	Duration        string    `json:"duration"`
	SyncedFrom      time.Time `json:"syncedFrom"`
}

// ErrSyncInProgress: another sync holds the lock. Overlapping syncs would race
// on the same rows, so the second invocation bails out instead.
var ErrSyncInProgress = errors.New("catalog sync already running")

// ========== JOB ==========

type CatalogSyncJob struct {
	db       *gorm.DB
	rdb      *redis.Client
	supplier *nieuwkoop.Client

	lockTTL time.Duration
}

func NewCatalogSyncJob(db *gorm.DB, rdb *redis.Client, supplier *nieuwkoop.Client) *CatalogSyncJob {
	return &CatalogSyncJob{
		db:       db,
		rdb:      rdb,
		supplier: supplier,
		lockTTL:  15 * time.Minute,
	}
}

// Run executes one sync pass. full forces the epoch cutoff; otherwise the
// last persisted cutoff is used. A single bad record never aborts the batch.
func (j *CatalogSyncJob) Run(ctx context.Context, full bool) (*SyncResult, error) {
	lock, err := j.acquireLock(ctx, "catalog_sync_lock", j.lockTTL)
	if errors.Is(err, ErrSyncInProgress) {
		return nil, ErrSyncInProgress
	}
	if err != nil {
		// redis outage, not a held lock
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release(ctx)

	since := FullSyncEpoch
	mode := "full"
	if !full {
		mode = "incremental"
		last, err := models.LastSyncAt(j.db)
		if err != nil {
			slog.Warn("Last cutoff unreadable, falling back to full range", "err", err)
		} else if !last.IsZero() {
			since = last
		}
	}

	start := time.Now()
	result := &SyncResult{SyncedFrom: since}

	items, err := j.supplier.FetchChangedItems(ctx, since)
	if err != nil {
		j.writeLog(mode, "error", result, start, err.Error())
		return nil, fmt.Errorf("fetch changed items: %w", err)
	}

	slog.Info("Catalog sync started", "mode", mode, "since", since, "items", len(items))

	for _, item := range items {
		outcome, err := j.syncItem(ctx, item)
		if err != nil {
			result.Errors++
			slog.Warn("Item skipped", "itemcode", item.Itemcode, "err", err)
			continue
		}
		switch outcome {
		case outcomeCreated:
			result.NewProducts++
		case outcomeUpdated:
			result.UpdatedProducts++
		}
	}

	result.Duration = time.Since(start).Round(time.Millisecond).String()

	status := "success"
	if result.Errors > 0 {
		status = "error"
	}
	j.writeLog(mode, status, result, start, "")

	// Persist the completion timestamp as the next incremental cutoff.
	completed := time.Now().UTC()
	if err := models.SetSetting(j.db, models.SettingLastSyncAt, completed.Format(time.RFC3339)); err != nil {
		slog.Error("Failed to persist last_sync_at", "err", err)
	}

	slog.Info("Catalog sync finished",
		"new", result.NewProducts,
		"updated", result.UpdatedProducts,
		"errors", result.Errors,
		"duration", result.Duration,
	)
	return result, nil
}

func (j *CatalogSyncJob) writeLog(mode, status string, r *SyncResult, start time.Time, message string) {
	entry := models.SyncLog{
		Status:          status,
		Mode:            mode,
		NewProducts:     r.NewProducts,
		UpdatedProducts: r.UpdatedProducts,
		ErrorCount:      r.Errors,
		DurationMs:      time.Since(start).Milliseconds(),
		SyncedFrom:      r.SyncedFrom,
		Message:         message,
	}
	if err := j.db.Create(&entry).Error; err != nil {
		slog.Error("Failed to write sync log", "err", err)
	}
}

// ========== PER-ITEM UPSERT ==========

type syncOutcome int

const (
	outcomeUnchanged syncOutcome = iota
	outcomeCreated
	outcomeUpdated
)

func (j *CatalogSyncJob) syncItem(ctx context.Context, item nieuwkoop.Item) (syncOutcome, error) {
	draft, err := j.mapItem(ctx, item)
	if err != nil {
		return outcomeUnchanged, err
	}

	var existing models.Product
	err = j.db.Where("item_code = ?", draft.ItemCode).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// CREATE — new products start visible; hiding is admin-only.
		draft.IsActive = true
		if err := j.db.Create(draft).Error; err != nil {
			return outcomeUnchanged, fmt.Errorf("create: %w", err)
		}
		return outcomeCreated, nil
	}
	if err != nil {
		return outcomeUnchanged, fmt.Errorf("lookup: %w", err)
	}

	updates := diffProduct(&existing, draft)
	if len(updates) == 0 {
		// Touch last_synced_at only; not an update for the tally.
		now := time.Now()
		j.db.Model(&existing).UpdateColumn("last_synced_at", &now)
		return outcomeUnchanged, nil
	}

	// is_active is deliberately absent from the diff: a resync must not
	// un-hide a product an admin hid, nor hide one an admin exposed.
	if err := j.db.Model(&existing).Updates(updates).Error; err != nil {
		return outcomeUnchanged, fmt.Errorf("update: %w", err)
	}
	return outcomeUpdated, nil
}

// mapItem turns a raw supplier record into a local product draft, pulling the
// per-item price and stock. Any validation or fetch failure is fatal for this
// item only.
func (j *CatalogSyncJob) mapItem(ctx context.Context, item nieuwkoop.Item) (*models.Product, error) {
	if item.Itemcode == "" {
		return nil, errors.New("missing itemcode")
	}
	if item.ItemDescription == "" {
		return nil, errors.New("missing item description")
	}

	price, err := j.supplier.FetchPrice(ctx, item.Itemcode)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if price.Price.IsNegative() {
		return nil, fmt.Errorf("negative price %s", price.Price)
	}

	stock, err := j.supplier.FetchStock(ctx, item.Itemcode)
	if err != nil && !errors.Is(err, nieuwkoop.ErrNotFound) {
		return nil, fmt.Errorf("stock: %w", err)
	}
	stockCount := 0
	if stock != nil {
		stockCount = stock.StockAvailable
	}

	specs, err := json.Marshal(item.Tags)
	if err != nil {
		return nil, fmt.Errorf("specs: %w", err)
	}

	sku := item.GTINCode
	if sku == "" {
		sku = item.Itemcode
	}

	now := time.Now()
	return &models.Product{
		ItemCode:     item.Itemcode,
		Sku:          sku,
		Name:         item.ItemDescription,
		Slug:         j.uniqueSlug(item.Itemcode, utils.Slugify(item.ItemDescription)),
		Category:     item.MainGroup,
		Subcategory:  item.ProductGroup,
		Brand:        item.Brand(),
		BasePrice:    price.Price,
		Stock:        stockCount,
		Specs:        datatypes.JSON(specs),
		LastSyncedAt: &now,
	}, nil
}

// uniqueSlug keeps persisted slugs collision-free: when another item already
// owns the base slug the item code is appended, and item codes are unique.
func (j *CatalogSyncJob) uniqueSlug(itemCode, base string) string {
	var taken int64
	j.db.Model(&models.Product{}).
		Where("slug = ?", base).
		Where("item_code <> ?", itemCode).
		Count(&taken)
	if taken == 0 {
		return base
	}
	return base + "-" + utils.Slugify(itemCode)
}

// diffProduct returns the column updates when supplier data differs. Empty map
// means nothing changed, which keeps a repeat sync at updatedCount = 0.
func diffProduct(existing, draft *models.Product) map[string]interface{} {
	updates := map[string]interface{}{}

	if existing.Sku != draft.Sku {
		updates["sku"] = draft.Sku
	}
	if existing.Name != draft.Name {
		updates["name"] = draft.Name
		updates["slug"] = draft.Slug
	}
	if existing.Category != draft.Category {
		updates["category"] = draft.Category
	}
	if existing.Subcategory != draft.Subcategory {
		updates["subcategory"] = draft.Subcategory
	}
	if existing.Brand != draft.Brand {
		updates["brand"] = draft.Brand
	}
	if !existing.BasePrice.Equal(draft.BasePrice) {
		updates["base_price"] = draft.BasePrice
	}
	if existing.Stock != draft.Stock {
		updates["stock"] = draft.Stock
	}
	if string(existing.Specs) != string(draft.Specs) {
		updates["specs"] = draft.Specs
	}

	if len(updates) > 0 {
		updates["last_synced_at"] = draft.LastSyncedAt
		updates["updated_at"] = time.Now()
	}
	return updates
}

// ========== LOCK ==========

type syncLock struct {
	rdb *redis.Client
	key string
}

func (l *syncLock) Release(ctx context.Context) {
	if l.rdb == nil {
		return
	}
	l.rdb.Del(ctx, l.key)
}

// acquireLock takes a redis SETNX lock so overlapping syncs are mutually
// excluded. Without redis (tests) the lock is a no-op.
func (j *CatalogSyncJob) acquireLock(ctx context.Context, key string, ttl time.Duration) (*syncLock, error) {
	if j.rdb == nil {
		return &syncLock{}, nil
	}
	ok, err := j.rdb.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSyncInProgress
	}
	return &syncLock{rdb: j.rdb, key: key}, nil
}
