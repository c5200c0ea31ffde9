package repositories

import (
	"context"
	"testing"
	"time"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewProductRepo(mock)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

var productColumns = []string{"id", "name", "collection_id", "image_url", "created_at", "name"}

func (suite *ProductRepoTestSuite) TestList_SearchMatchesProductOrCollectionName() {
	params := common.ListParams{Page: 1, Limit: 10, Search: "LINEN"}.Normalize()
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products p LEFT JOIN collections c ON c.id = p.collection_id WHERE \(p.name ILIKE \$1 ESCAPE '\\' OR c.name ILIKE \$1 ESCAPE '\\'\)`).
		WithArgs("%LINEN%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	suite.mock.ExpectQuery(`WHERE \(p.name ILIKE \$1 ESCAPE '\\' OR c.name ILIKE \$1 ESCAPE '\\'\) ORDER BY p.created_at DESC, p.id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("%LINEN%", 10, 0).
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow(int64(2), "Linen shirt", nil, "/uploads/products/2.jpg", now, nil).
			AddRow(int64(1), "Tote", int64Ptr(4), "/uploads/products/1.jpg", now, stringPtr("linen basics")))

	products, total, err := suite.repo.List(suite.context, params)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, total)
	require.Len(suite.T(), products, 2)
	assert.Nil(suite.T(), products[0].CollectionName)
	assert.Equal(suite.T(), "linen basics", *products[1].CollectionName)
}

func (suite *ProductRepoTestSuite) TestList_PagesByCreationDescending() {
	params := common.ListParams{Page: 2, Limit: 5}.Normalize()

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products p`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	suite.mock.ExpectQuery(`ORDER BY p.created_at DESC, p.id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(pgxmock.NewRows(productColumns))

	_, total, err := suite.repo.List(suite.context, params)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, total)
}

func (suite *ProductRepoTestSuite) TestUpdate_WithoutImageOmitsColumn() {
	collectionID := int64(3)
	suite.mock.ExpectExec(`UPDATE products SET name = \$1, collection_id = \$2 WHERE id = \$3`).
		WithArgs("Scarf", &collectionID, int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, &models.ProductUpdate{ID: 8, Name: "Scarf", CollectionID: &collectionID})
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestUpdate_WithImage() {
	suite.mock.ExpectExec(`UPDATE products SET name = \$1, collection_id = \$2, image_url = \$3 WHERE id = \$4`).
		WithArgs("Scarf", (*int64)(nil), "/uploads/products/new.png", int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, &models.ProductUpdate{ID: 8, Name: "Scarf", ImageURL: "/uploads/products/new.png"})
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestUpdate_UnknownID() {
	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs("Scarf", (*int64)(nil), int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, &models.ProductUpdate{ID: 99, Name: "Scarf"})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ProductRepoTestSuite) TestGetByCollectionID() {
	now := time.Now()
	suite.mock.ExpectQuery(`WHERE p.collection_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow(int64(1), "Tote", int64Ptr(4), "/uploads/products/1.jpg", now, stringPtr("Bags")))

	products, err := suite.repo.GetByCollectionID(suite.context, 4)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "/uploads/products/1.jpg", products[0].ImageURL)
}
