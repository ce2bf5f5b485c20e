package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"armenu/internal/cart"
	"armenu/internal/menu"
	"armenu/internal/restaurant"

	"github.com/cucumber/godog"
)

type cartTestContext struct {
	store        *cart.MemoryStore
	restaurantID string
	pos          *restaurant.POSConfig
	dishes       map[string]menu.Model3D
	engine       *cart.Engine
	lastErr      error
}

func (c *cartTestContext) reset() {
	c.store = cart.NewMemoryStore()
	c.restaurantID = ""
	c.pos = nil
	c.dishes = make(map[string]menu.Model3D)
	c.engine = nil
	c.lastErr = nil
}

func (c *cartTestContext) open() error {
	e, err := cart.NewEngine(context.Background(), c.store, c.restaurantID, c.pos)
	if err != nil {
		return err
	}
	c.engine = e
	return nil
}

func (c *cartTestContext) restaurantTakesOrdersWithFee(restaurantID string, fee float64) error {
	cfg := restaurant.DefaultPOSConfig()
	cfg.Enabled = true
	cfg.Features.Ordering = true
	cfg.Settings.DeliveryFee = fee

	c.restaurantID = restaurantID
	c.pos = &cfg
	return c.open()
}

func (c *cartTestContext) restaurantStopsTakingOrders(restaurantID string) error {
	cfg := *c.pos
	cfg.Features.Ordering = false
	c.pos = &cfg
	return c.engine.SetPOSConfig(context.Background(), c.pos)
}

func (c *cartTestContext) menuHasDishPriced(restaurantID, name string, price float64) error {
	c.dishes[name] = menu.Model3D{ID: name, RestaurantID: restaurantID, Name: name, Price: &price}
	return nil
}

func (c *cartTestContext) menuHasDishWithoutPrice(restaurantID, name string) error {
	c.dishes[name] = menu.Model3D{ID: name, RestaurantID: restaurantID, Name: name}
	return nil
}

func (c *cartTestContext) iAdd(quantity int, name string) error {
	return c.add(quantity, name, nil)
}

func (c *cartTestContext) iAddWithOption(quantity int, name, option string, price float64) error {
	return c.add(quantity, name, []cart.ItemOption{{Name: option, Price: price}})
}

func (c *cartTestContext) add(quantity int, name string, options []cart.ItemOption) error {
	d, ok := c.dishes[name]
	if !ok {
		return fmt.Errorf("unknown dish %q", name)
	}
	c.lastErr = c.engine.AddToCart(context.Background(), d, quantity, options, "")
	if c.lastErr != nil && !cart.IsRejection(c.lastErr) {
		return c.lastErr
	}
	return nil
}

func (c *cartTestContext) lineFor(name string) (cart.Item, error) {
	for _, it := range c.engine.Cart().Items {
		if it.ModelID == name {
			return it, nil
		}
	}
	return cart.Item{}, fmt.Errorf("%q is not in the cart", name)
}

func (c *cartTestContext) iSetQuantity(name string, quantity int) error {
	it, err := c.lineFor(name)
	if err != nil {
		return err
	}
	return c.engine.UpdateQuantity(context.Background(), it.ID, quantity)
}

func (c *cartTestContext) iRemove(name string) error {
	it, err := c.lineFor(name)
	if err != nil {
		return err
	}
	return c.engine.RemoveFromCart(context.Background(), it.ID)
}

func (c *cartTestContext) iReopenTheCart() error {
	return c.open()
}

func expectMoney(label string, want, got float64) error {
	if cart.Round2(want) != got {
		return fmt.Errorf("expected %s %.2f, got %.2f", label, want, got)
	}
	return nil
}

func (c *cartTestContext) subtotalIs(want float64) error {
	return expectMoney("subtotal", want, c.engine.Cart().Subtotal)
}

func (c *cartTestContext) totalIs(want float64) error {
	return expectMoney("total", want, c.engine.Cart().Total)
}

func (c *cartTestContext) taxIs(want float64) error {
	return expectMoney("tax", want, c.engine.Cart().Tax)
}

func (c *cartTestContext) cartHoldsItems(n int) error {
	if got := c.engine.ItemCount(); got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) cartHasLines(n int) error {
	if got := len(c.engine.Cart().Items); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) cartIsEmpty() error {
	return c.cartHasLines(0)
}

func (c *cartTestContext) addIsRejectedWith(msg string) error {
	if c.lastErr == nil {
		return errors.New("expected the add to be rejected")
	}
	if c.engine.Error() != msg {
		return fmt.Errorf("expected error %q, got %q", msg, c.engine.Error())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^restaurant "([^"]*)" takes orders with a delivery fee of (\d+\.\d+)$`, tc.restaurantTakesOrdersWithFee)
	ctx.Step(`^the menu of "([^"]*)" has dish "([^"]*)" priced (\d+\.\d+)$`, tc.menuHasDishPriced)
	ctx.Step(`^the menu of "([^"]*)" has dish "([^"]*)" without a price$`, tc.menuHasDishWithoutPrice)

	// When steps
	ctx.Step(`^I add (\d+) "([^"]*)" to the cart$`, tc.iAdd)
	ctx.Step(`^I add (\d+) "([^"]*)" with option "([^"]*)" costing (\d+\.\d+) to the cart$`, tc.iAddWithOption)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetQuantity)
	ctx.Step(`^I remove "([^"]*)" from the cart$`, tc.iRemove)
	ctx.Step(`^I reopen the cart$`, tc.iReopenTheCart)
	ctx.Step(`^restaurant "([^"]*)" stops taking orders$`, tc.restaurantStopsTakingOrders)

	// Then steps
	ctx.Step(`^the cart subtotal is (\d+\.\d+)$`, tc.subtotalIs)
	ctx.Step(`^the cart total is (\d+\.\d+)$`, tc.totalIs)
	ctx.Step(`^the cart tax is (\d+\.\d+)$`, tc.taxIs)
	ctx.Step(`^the cart holds (\d+) items$`, tc.cartHoldsItems)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.cartHasLines)
	ctx.Step(`^the cart is empty$`, tc.cartIsEmpty)
	ctx.Step(`^the add is rejected with "([^"]*)"$`, tc.addIsRejectedWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
