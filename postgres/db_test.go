package postgres_test

import (
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/postgres"
	"gorm.io/datatypes"
)

func (suite *DBTestSuite) TestCreate() {
	for _, tc := range []struct {
		name   string
		person Person
		err    error
	}{
		{"valid", Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"}, nil},
		{"blank-status", Person{Name: "bia", Tier: "SILVER"}, nil},
		{"invalid-status", Person{Name: "caio", RelationshipStatus: 9, Tier: "GOLD"}, enumerate.ErrNotValid},
		{"blank-tier", Person{Name: "davi", RelationshipStatus: 2}, enumerate.ErrMissingData},
		{"invalid-tier", Person{Name: "eva", Tier: "BRONZE"}, enumerate.ErrNotValid},
	} {
		suite.Run(tc.name, func() {
			// Arrange
			p := tc.person

			// Act
			err := suite.db.Create(&p)

			// Assert
			suite.Require().ErrorIs(err, tc.err)

			n, err := suite.db.Model(&Person{}).Where("name = ?", tc.person.Name).Count()
			suite.Require().Nil(err)
			if tc.err != nil {
				suite.Require().Zero(n)
				return
			}

			suite.Require().NotZero(p.ID)
			suite.Require().EqualValues(1, n)
		})
	}
}

func (suite *DBTestSuite) TestCreateMany() {
	// Arrange
	people := []Person{
		{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"},
		{Name: "bia", RelationshipStatus: 7, Tier: "GOLD"},
	}

	// Act
	err := suite.db.Create(&people)

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotValid)
	suite.Require().Contains(err.Error(), "record 1")

	n, err := suite.db.Model(&Person{}).Count()
	suite.Require().Nil(err)
	suite.Require().Zero(n)
}

func (suite *DBTestSuite) TestCreateConstraints() {
	// Arrange
	db := suite.unvalidated()

	// Act
	err := db.Create(&Person{Name: "ana", RelationshipStatus: 9, Tier: "GOLD"})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotValid)

	// Act
	err = db.Create(&Person{Name: "ana", Tier: "PLATINUM"})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotValid)

	// Arrange
	suite.seed(Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"})

	// Act
	err = db.Create(&Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrExists)
}

func (suite *DBTestSuite) TestUpdate() {
	// Arrange
	p := suite.seed(Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"})[0]
	byID := func() *postgres.DB { return suite.db.Model(&Person{}).Where("id = ?", p.ID) }

	// Act
	err := byID().Update(postgres.Updates{"relationship_status": 9})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotValid)

	// Act
	err = byID().Update(postgres.Updates{"Tier": ""})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrMissingData)

	// Act
	err = byID().Update(postgres.Updates{"relationship_status": 2, "name": "ana maria"})

	// Assert
	suite.Require().Nil(err)

	var actual Person
	suite.Require().Nil(suite.db.Where("id = ?", p.ID).First(&actual))
	suite.Require().Equal(2, actual.RelationshipStatus)
	suite.Require().Equal("ana maria", actual.Name)

	// Act
	err = suite.db.Model(&Person{}).Where("id = ?", p.ID+1).Update(postgres.Updates{"name": "nobody"})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotExist)

	// Act
	err = byID().Update(postgres.Updates{})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrMissingData)
}

func (suite *DBTestSuite) TestFind() {
	// Arrange
	suite.seed(
		Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"},
		Person{Name: "bia", RelationshipStatus: 3, Tier: "SILVER"},
	)

	// Act
	var people []Person
	err := suite.db.Order("name").Find(&people)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(people, 2)
	suite.Require().Equal("ana", people[0].Name)

	// Act
	people = nil
	err = suite.db.Where("name = ?", "caio").Find(&people)

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotExist)

	// Act
	people = nil
	err = suite.db.Where("name = ? AND tier = ?", "caio", "GOLD").Find(&people)

	// Assert
	suite.Require().Nil(people)
	suite.Require().ErrorIs(err, enumerate.ErrNotValid)

	// Act
	var p Person
	err = suite.db.Where("name = ?", "caio").First(&p)

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotExist)
}

func (suite *DBTestSuite) TestStripNils() {
	// Arrange
	u := postgres.Updates{
		"name":        "ana",
		"nothing":     nil,
		"null_json":   datatypes.JSON([]byte("null")),
		"json":        datatypes.JSON([]byte(`{"a":1}`)),
		"environment": testingEnv(""),
		"valid_env":   testingEnv("TESTING"),
	}

	// Act
	u.StripNils()

	// Assert
	suite.Require().Equal(postgres.Updates{
		"name":      "ana",
		"json":      datatypes.JSON([]byte(`{"a":1}`)),
		"valid_env": testingEnv("TESTING"),
	}, u)
}

type testingEnv string

func (e testingEnv) String() string { return string(e) }

func (e testingEnv) Valid() error {
	if e != "TESTING" {
		return enumerate.ErrNotValid
	}

	return nil
}
