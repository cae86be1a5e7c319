package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// cacheTTL — срок жизни закэшированного результата поиска продукта
const cacheTTL = 24 * time.Hour

// GetFood возвращает закэшированный результат поиска продукта.
// Просроченные записи считаются отсутствующими
func (db *DB) GetFood(query string) (name string, kcalPer100g float64, ok bool, err error) {
	var cachedAt time.Time
	row := db.conn.QueryRow(
		`SELECT name, kcal_per_100g, cached_at FROM food_cache WHERE query = ?`,
		normalizeQuery(query),
	)
	if err := row.Scan(&name, &kcalPer100g, &cachedAt); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, false, nil
		}
		return "", 0, false, fmt.Errorf("не удалось прочитать кэш продуктов: %w", err)
	}
	if time.Since(cachedAt) > cacheTTL {
		return "", 0, false, nil
	}
	return name, kcalPer100g, true, nil
}

// SaveFood записывает результат поиска продукта в кэш
func (db *DB) SaveFood(query, name string, kcalPer100g float64) error {
	_, err := db.conn.Exec(
		`INSERT INTO food_cache(query, name, kcal_per_100g, cached_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET name = excluded.name, kcal_per_100g = excluded.kcal_per_100g, cached_at = excluded.cached_at`,
		normalizeQuery(query), name, kcalPer100g, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("не удалось записать кэш продуктов: %w", err)
	}
	return nil
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
