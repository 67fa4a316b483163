package mysql

import (
	"testing"

	"github.com/agrisync/agrisync/database/orm"
)

func TestOpenSQLite(t *testing.T) {
	db, err := Open(Config{Driver: DriverSQLite, LogLevel: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	row := &orm.LedgerTransaction{
		RequestID: "req",
		Op:        orm.BuyCrop,
		Status:    orm.TxSucceeded,
		Hash:      "0x01",
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("insert journal row: %v", err)
	}

	got := &orm.LedgerTransaction{}
	if err := db.Where("hash = ?", "0x01").First(got).Error; err != nil {
		t.Fatalf("query journal row: %v", err)
	}
	if got.Op != orm.BuyCrop || got.Status != orm.TxSucceeded {
		t.Errorf("unexpected row %+v", got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}); err == nil {
		t.Errorf("expected error for unknown driver")
	}
}
