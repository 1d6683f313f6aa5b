package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"mti.co.id/attreport/core"
	"mti.co.id/attreport/model"
)

// TransactionStore retrieves badge scans from the access control
// database (CardDB joined to tblTransaction).
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Transactions(f core.TransactionFilter) ([]model.ScanRecord, error) {
	query := `
SELECT
	Cdb.CardNo, Cdb.Name, Cdb.Title, Cdb.Position, Cdb.Department,
	Cdb.CardType, Cdb.Company, Cdb.StaffNo,
	Lt.TrDateTime, Lt.TrDate,
	Lt.` + "`Transaction`" + ` AS dtTransaction,
	Lt.TrController, Lt.UnitNo
FROM CardDB Cdb
INNER JOIN tblTransaction Lt ON Cdb.CardNo = Lt.CardNo
WHERE Lt.TrDateTime BETWEEN ? AND ?
  AND Cdb.StaffNo LIKE ?
  AND Lt.` + "`Transaction`" + ` = ?`

	args := []interface{}{f.Start, f.End, f.StaffPrefix + "%", f.Status}
	if len(f.Controllers) > 0 {
		query += "\n  AND Lt.TrController IN ?"
		args = append(args, f.Controllers)
	}

	var scans []model.ScanRecord
	if err := s.db.Raw(query, args...).Scan(&scans).Error; err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	now := time.Now()
	for i := range scans {
		scans[i].InsertDate = now
	}
	return scans, nil
}
