package service

import (
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/domain/branch"
	"github.com/gymflow/gymflow/internal/domain/catalog"
	"github.com/gymflow/gymflow/internal/domain/invoice"
	"github.com/gymflow/gymflow/internal/domain/member"
	"github.com/gymflow/gymflow/internal/domain/staff"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
)

// ServiceParams bundles the dependencies every service needs. Constructors
// take the whole bundle so adding a dependency does not ripple through each
// call site.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	InvoiceRepo invoice.Repository
	SeqProvider invoice.SequenceProvider
	MemberRepo  member.Repository
	StaffRepo   staff.Repository
	CatalogRepo catalog.Repository
	BranchRepo  branch.Repository
}
