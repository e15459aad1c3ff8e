//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"bankident/internal/registry"
	"bankident/pkg/testutil/containers"
)

type PostgresDirectorySuite struct {
	suite.Suite
	pg  *containers.PostgresContainer
	dir *PostgresDirectory
	ctx context.Context
}

func TestPostgresDirectorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresDirectorySuite))
}

func (s *PostgresDirectorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())

	schema, err := os.ReadFile("schema.sql")
	s.Require().NoError(err)
	_, err = s.pg.Exec(s.ctx, string(schema))
	s.Require().NoError(err)

	s.dir = NewPostgres(s.pg.DB)
}

func (s *PostgresDirectorySuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "bank_directory"))
	s.Require().NoError(s.dir.ReplaceAll(s.ctx, []registry.Bank{
		{CountryCode: "DE", BankCode: "20070024", Name: "Deutsche Bank PGK", ShortName: "DB PGK Hamburg", BIC: "DEUTDEDBHAM", Primary: true},
		{CountryCode: "DE", BankCode: "20070024", Name: "Deutsche Bank", BIC: "DEUTDEHHXXX"},
		{CountryCode: "DE", BankCode: "37040044", Name: "Commerzbank", BIC: "COBADEFFXXX", ChecksumAlgo: "00", Primary: true},
		{CountryCode: "FR", BankCode: "30004", Name: "BNP Paribas", BIC: "BNPAFRPP", Primary: true},
	}))
}

func (s *PostgresDirectorySuite) TestFindBanks() {
	banks, err := s.dir.FindBanks(s.ctx, "DE", "20070024")
	s.Require().NoError(err)
	s.Require().Len(banks, 2)

	primary, ok := registry.PrimaryBank(banks)
	s.Require().True(ok)
	s.Equal("DEUTDEDBHAM", primary.BIC)
	s.Equal("DB PGK Hamburg", primary.ShortName)
}

func (s *PostgresDirectorySuite) TestFindBanksNormalizesCase() {
	banks, err := s.dir.FindBanks(s.ctx, "de", "20070024")
	s.Require().NoError(err)
	s.Len(banks, 2)
}

func (s *PostgresDirectorySuite) TestFindBanksAbsentPair() {
	banks, err := s.dir.FindBanks(s.ctx, "DE", "99999999")
	s.Require().NoError(err)
	s.Empty(banks)
}

func (s *PostgresDirectorySuite) TestBanksForCountry() {
	banks, err := s.dir.BanksForCountry(s.ctx, "DE")
	s.Require().NoError(err)
	s.Len(banks, 3)

	banks, err = s.dir.BanksForCountry(s.ctx, "NL")
	s.Require().NoError(err)
	s.Empty(banks)
}

func (s *PostgresDirectorySuite) TestBanksByBIC() {
	banks, err := s.dir.BanksByBIC(s.ctx, "COBADEFFXXX")
	s.Require().NoError(err)
	s.Require().Len(banks, 1)
	s.Equal("37040044", banks[0].BankCode)
	s.Equal("00", banks[0].ChecksumAlgo)
}

func (s *PostgresDirectorySuite) TestNullableColumns() {
	banks, err := s.dir.FindBanks(s.ctx, "FR", "30004")
	s.Require().NoError(err)
	s.Require().Len(banks, 1)
	s.Empty(banks[0].ShortName)
	s.Empty(banks[0].ChecksumAlgo)
}

func (s *PostgresDirectorySuite) TestReplaceAllSwapsDataset() {
	err := s.dir.ReplaceAll(s.ctx, []registry.Bank{
		{CountryCode: "NL", BankCode: "ABNA", Name: "ABN AMRO", BIC: "ABNANL2A", Primary: true},
	})
	s.Require().NoError(err)

	banks, err := s.dir.BanksForCountry(s.ctx, "DE")
	s.Require().NoError(err)
	s.Empty(banks, "previous dataset is gone")

	banks, err = s.dir.FindBanks(s.ctx, "NL", "ABNA")
	s.Require().NoError(err)
	s.Len(banks, 1)
}

func (s *PostgresDirectorySuite) TestServesTheEngines() {
	orig := registry.ActiveDirectory()
	s.T().Cleanup(func() { registry.SetDirectory(orig) })
	registry.SetDirectory(s.dir)

	banks, err := registry.ActiveDirectory().FindBanks(s.ctx, "DE", "37040044")
	s.Require().NoError(err)
	s.Require().Len(banks, 1)
	s.Equal("COBADEFFXXX", banks[0].BIC)
}
