package app

import (
	"fmt"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	grantsHTTP "github.com/allisson/grants/internal/grants/http"
	grantsRepository "github.com/allisson/grants/internal/grants/repository"
	grantsService "github.com/allisson/grants/internal/grants/service"
	grantsUseCase "github.com/allisson/grants/internal/grants/usecase"
)

// GrantRepository returns the access grant repository based on database driver.
func (c *Container) GrantRepository() (grantsUseCase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// TokenGenerator returns the access token generator.
func (c *Container) TokenGenerator() grantsService.TokenGenerator {
	c.tokenGeneratorInit.Do(func() {
		c.tokenGenerator = grantsService.NewTokenGenerator()
	})
	return c.tokenGenerator
}

// Classifier returns the product tier classifier.
func (c *Container) Classifier() grantsService.Classifier {
	c.classifierInit.Do(func() {
		c.classifier = grantsService.NewClassifier(grantsService.ClassifierConfig{
			LifetimeCode: c.config.ClassifierLifetimeCode,
			DemoCode:     c.config.ClassifierDemoCode,
			AmountCutoff: c.config.ClassifierAmountCutoff,
		})
	})
	return c.classifier
}

// IssuerUseCase returns the grant issuer use case.
func (c *Container) IssuerUseCase() (grantsUseCase.IssuerUseCase, error) {
	var err error
	c.issuerUseCaseInit.Do(func() {
		c.issuerUseCase, err = c.initIssuerUseCase()
		if err != nil {
			c.initErrors["issuerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["issuerUseCase"]; exists {
		return nil, storedErr
	}
	return c.issuerUseCase, nil
}

// RedemptionUseCase returns the grant redemption use case.
func (c *Container) RedemptionUseCase() (grantsUseCase.RedemptionUseCase, error) {
	var err error
	c.redemptionUseCaseInit.Do(func() {
		c.redemptionUseCase, err = c.initRedemptionUseCase()
		if err != nil {
			c.initErrors["redemptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["redemptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.redemptionUseCase, nil
}

// AdminUseCase returns the grant administration use case.
func (c *Container) AdminUseCase() (grantsUseCase.AdminUseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// initGrantRepository creates the access grant repository instance.
func (c *Container) initGrantRepository() (grantsUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return grantsRepository.NewMySQLGrantRepository(db), nil
	case "postgres":
		return grantsRepository.NewPostgreSQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initIssuerUseCase creates the issuer use case with all its dependencies.
func (c *Container) initIssuerUseCase() (grantsUseCase.IssuerUseCase, error) {
	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for issuer use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for issuer use case: %w", err)
	}

	useCase := grantsUseCase.NewIssuerUseCase(grantRepo, c.TokenGenerator(), c.config.GrantTTL)
	return grantsUseCase.NewIssuerUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initRedemptionUseCase creates the redemption use case with all its dependencies.
func (c *Container) initRedemptionUseCase() (grantsUseCase.RedemptionUseCase, error) {
	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for redemption use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for redemption use case: %w", err)
	}

	useCase := grantsUseCase.NewRedemptionUseCase(grantRepo)
	return grantsUseCase.NewRedemptionUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAdminUseCase creates the admin use case with all its dependencies.
func (c *Container) initAdminUseCase() (grantsUseCase.AdminUseCase, error) {
	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for admin use case: %w", err)
	}

	return grantsUseCase.NewAdminUseCase(grantRepo), nil
}

// productCatalog builds the tier to deliverable mapping from configuration.
func (c *Container) productCatalog() grantsHTTP.ProductCatalog {
	return grantsHTTP.ProductCatalog{
		grantsDomain.TierDemo: {
			Name: c.config.DemoProductName,
			URL:  c.config.DemoProductURL,
		},
		grantsDomain.TierLifetime: {
			Name: c.config.LifetimeProductName,
			URL:  c.config.LifetimeProductURL,
		},
	}
}
