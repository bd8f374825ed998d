package storage

import "github.com/Eutropios/WarMAC/models"

// SnapshotWriter is the interface for dumping fetched raw orders.
type SnapshotWriter interface {
	WriteOrders(item string, orders []models.RawOrder) error
	Close() error
}

// HistoryWriter is the interface for persisting computed results.
type HistoryWriter interface {
	WriteResult(result models.StatisticResult) error
	Close() error
}
