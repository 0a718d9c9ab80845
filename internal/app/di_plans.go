package app

import (
	"fmt"

	plansHTTP "github.com/allisson/cards/internal/plans/http"
	plansRepository "github.com/allisson/cards/internal/plans/repository"
	plansUseCase "github.com/allisson/cards/internal/plans/usecase"
)

// PlanRepository returns the plan repository based on database driver.
func (c *Container) PlanRepository() (plansUseCase.PlanRepository, error) {
	var err error
	c.planRepoInit.Do(func() {
		c.planRepo, err = c.initPlanRepository()
		if err != nil {
			c.initErrors["planRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["planRepo"]; exists {
		return nil, storedErr
	}
	return c.planRepo, nil
}

// PlanUseCase returns the plan use case.
// It also serves as the plan catalog for the card use cases.
func (c *Container) PlanUseCase() (plansUseCase.PlanUseCase, error) {
	var err error
	c.planUseCaseInit.Do(func() {
		c.planUseCase, err = c.initPlanUseCase()
		if err != nil {
			c.initErrors["planUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["planUseCase"]; exists {
		return nil, storedErr
	}
	return c.planUseCase, nil
}

// PlanHandler returns the HTTP handler for plan catalog operations.
func (c *Container) PlanHandler() (*plansHTTP.PlanHandler, error) {
	var err error
	c.planHandlerInit.Do(func() {
		var planUseCase plansUseCase.PlanUseCase
		planUseCase, err = c.PlanUseCase()
		if err != nil {
			c.initErrors["planHandler"] = err
			return
		}
		c.planHandler = plansHTTP.NewPlanHandler(planUseCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["planHandler"]; exists {
		return nil, storedErr
	}
	return c.planHandler, nil
}

// initPlanRepository creates the plan repository for the configured driver.
func (c *Container) initPlanRepository() (plansUseCase.PlanRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	switch c.config.DBDriver {
	case "postgres":
		return plansRepository.NewPostgreSQLPlanRepository(db), nil
	case "mysql":
		return plansRepository.NewMySQLPlanRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPlanUseCase assembles the plan use case.
func (c *Container) initPlanUseCase() (plansUseCase.PlanUseCase, error) {
	planRepo, err := c.PlanRepository()
	if err != nil {
		return nil, err
	}
	return plansUseCase.NewPlanUseCase(planRepo), nil
}
