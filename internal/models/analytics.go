package models

import "time"

// HerdStatusCount groups cows by status for the dashboard.
type HerdStatusCount struct {
	Status CowStatus `db:"status" json:"status"`
	Count  int       `db:"count" json:"count"`
}

// DashboardSummary is the composed farm overview payload.
type DashboardSummary struct {
	UserID          string            `json:"user_id"`
	HerdSize        int               `json:"herd_size"`
	HerdByStatus    []HerdStatusCount `json:"herd_by_status"`
	MilkTodayLiters float64           `json:"milk_today_liters"`
	OpenShifts      int               `json:"open_shifts"`
	ActiveAlerts    int               `json:"active_alerts"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// MilkTrend is the per-day production series for charts and exports.
type MilkTrend struct {
	UserID string           `json:"user_id"`
	From   time.Time        `json:"from"`
	To     time.Time        `json:"to"`
	Days   []MilkDailyTotal `json:"days"`
}

// SystemMetrics is a lightweight snapshot of process-level counters
// surfaced on the analytics endpoints.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
