package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	cardsHTTP "github.com/allisson/cards/internal/cards/http"
	cardsRepository "github.com/allisson/cards/internal/cards/repository"
	cardsService "github.com/allisson/cards/internal/cards/service"
	cardsUseCase "github.com/allisson/cards/internal/cards/usecase"
	eventsRepository "github.com/allisson/cards/internal/events/repository"
	identityHTTP "github.com/allisson/cards/internal/identity/http"
)

// CardRepository returns the card repository based on database driver.
func (c *Container) CardRepository() (cardsUseCase.CardRepository, error) {
	var err error
	c.cardRepoInit.Do(func() {
		c.cardRepo, err = c.initCardRepository()
		if err != nil {
			c.initErrors["cardRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardRepo"]; exists {
		return nil, storedErr
	}
	return c.cardRepo, nil
}

// EventRepository returns the card event repository based on database driver.
func (c *Container) EventRepository() (cardsUseCase.EventRepository, error) {
	var err error
	c.eventRepoInit.Do(func() {
		c.eventRepo, err = c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventRepo"]; exists {
		return nil, storedErr
	}
	return c.eventRepo, nil
}

// CardUseCase returns the card use case, wrapped with business metrics.
func (c *Container) CardUseCase() (cardsUseCase.CardUseCase, error) {
	var err error
	c.cardUseCaseInit.Do(func() {
		c.cardUseCase, err = c.initCardUseCase()
		if err != nil {
			c.initErrors["cardUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardUseCase"]; exists {
		return nil, storedErr
	}
	return c.cardUseCase, nil
}

// VerificationUseCase returns the verification use case, wrapped with business metrics.
func (c *Container) VerificationUseCase() (cardsUseCase.VerificationUseCase, error) {
	var err error
	c.verificationUseCaseInit.Do(func() {
		c.verificationUseCase, err = c.initVerificationUseCase()
		if err != nil {
			c.initErrors["verificationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["verificationUseCase"]; exists {
		return nil, storedErr
	}
	return c.verificationUseCase, nil
}

// CardHandler returns the HTTP handler for card lifecycle operations.
func (c *Container) CardHandler() (*cardsHTTP.CardHandler, error) {
	var err error
	c.cardHandlerInit.Do(func() {
		var cardUseCase cardsUseCase.CardUseCase
		cardUseCase, err = c.CardUseCase()
		if err != nil {
			c.initErrors["cardHandler"] = err
			return
		}
		c.cardHandler = cardsHTTP.NewCardHandler(cardUseCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardHandler"]; exists {
		return nil, storedErr
	}
	return c.cardHandler, nil
}

// VerificationHandler returns the HTTP handler for card verification checks.
func (c *Container) VerificationHandler() (*cardsHTTP.VerificationHandler, error) {
	var err error
	c.verificationHandlerInit.Do(func() {
		var verificationUseCase cardsUseCase.VerificationUseCase
		verificationUseCase, err = c.VerificationUseCase()
		if err != nil {
			c.initErrors["verificationHandler"] = err
			return
		}
		c.verificationHandler = cardsHTTP.NewVerificationHandler(verificationUseCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["verificationHandler"]; exists {
		return nil, storedErr
	}
	return c.verificationHandler, nil
}

// identityMiddleware builds the identity resolution middleware.
func (c *Container) identityMiddleware() gin.HandlerFunc {
	return identityHTTP.IdentityMiddleware(c.IdentityResolver(), c.Logger())
}

// initCardRepository creates the card repository for the configured driver.
func (c *Container) initCardRepository() (cardsUseCase.CardRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	switch c.config.DBDriver {
	case "postgres":
		return cardsRepository.NewPostgreSQLCardRepository(db), nil
	case "mysql":
		return cardsRepository.NewMySQLCardRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEventRepository creates the card event repository for the configured driver.
func (c *Container) initEventRepository() (cardsUseCase.EventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	switch c.config.DBDriver {
	case "postgres":
		return eventsRepository.NewPostgreSQLEventRepository(db), nil
	case "mysql":
		return eventsRepository.NewMySQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCardUseCase assembles the card use case with its dependencies.
func (c *Container) initCardUseCase() (cardsUseCase.CardUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, err
	}

	cardRepo, err := c.CardRepository()
	if err != nil {
		return nil, err
	}

	planCatalog, err := c.PlanUseCase()
	if err != nil {
		return nil, err
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, err
	}

	planQuotas := make(map[int64]int, len(c.config.PlanQuotas))
	for planID, quota := range c.config.PlanQuotas {
		planQuotas[int64(planID)] = quota
	}

	useCase := cardsUseCase.NewCardUseCase(
		txManager,
		cardRepo,
		planCatalog,
		eventRepo,
		cardsService.NewSensitiveDataGenerator(),
		int64(c.config.DefaultPlanID),
		planQuotas,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return cardsUseCase.NewCardUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initVerificationUseCase assembles the verification use case with its dependencies.
func (c *Container) initVerificationUseCase() (cardsUseCase.VerificationUseCase, error) {
	cardRepo, err := c.CardRepository()
	if err != nil {
		return nil, err
	}

	planCatalog, err := c.PlanUseCase()
	if err != nil {
		return nil, err
	}

	useCase := cardsUseCase.NewVerificationUseCase(cardRepo, planCatalog)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return cardsUseCase.NewVerificationUseCaseWithMetrics(useCase, businessMetrics), nil
}
