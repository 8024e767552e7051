package repository

import "database/sql"

type Repository struct {
	Printers PrinterRepositoryInterface
}

func New(db *sql.DB) *Repository {
	return &Repository{
		Printers: NewPrinterRepository(db),
	}
}
