package repository

import (
	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/domain/branch"
	"github.com/gymflow/gymflow/internal/domain/catalog"
	"github.com/gymflow/gymflow/internal/domain/invoice"
	"github.com/gymflow/gymflow/internal/domain/member"
	"github.com/gymflow/gymflow/internal/domain/staff"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
	repo "github.com/gymflow/gymflow/internal/repository/postgres"
)

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return repo.NewInvoiceRepository(db, logger)
}

func NewBranchSequenceProvider(db *postgres.DB, cfg *config.Configuration, logger *logger.Logger) invoice.SequenceProvider {
	return repo.NewBranchSequenceProvider(db, cfg, logger)
}

func NewMemberRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) member.Repository {
	return repo.NewMemberRepository(db, c, logger)
}

func NewStaffRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) staff.Repository {
	return repo.NewStaffRepository(db, c, logger)
}

func NewCatalogRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) catalog.Repository {
	return repo.NewCatalogRepository(db, c, logger)
}

func NewBranchRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) branch.Repository {
	return repo.NewBranchRepository(db, c, logger)
}
