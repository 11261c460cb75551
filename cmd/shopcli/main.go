// shopcli exercises the LightShop client data layer from the command line:
// login, cart inspection and cart mutation against a running backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/api"
	"github.com/SeimoDev/LightShop/internal/app"
	"github.com/SeimoDev/LightShop/internal/config"
	"github.com/SeimoDev/LightShop/internal/logger"
)

func main() {
	_ = godotenv.Load()
	logger.SetupDefault(os.Stderr)

	configPath := flag.String("config", "config.yml", "path to the yaml config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := app.NewContainer(cfg, app.WithRedirect(func(route string) {
		fmt.Fprintf(os.Stderr, "session ended, log in again (%s)\n", route)
	}))
	if err != nil {
		log.Fatalf("wiring: %v", err)
	}
	defer container.Close()

	if err := run(container, flag.Args()); err != nil {
		log.Fatalf("shopcli: %v", err)
	}
	drainToasts(container)
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	base := os.Getenv("LIGHTSHOP_BASE_URL")
	if base == "" {
		return nil, fmt.Errorf("no config file and LIGHTSHOP_BASE_URL unset")
	}
	if os.Getenv("LIGHTSHOP_VARIANT") == string(config.VariantAdmin) {
		return config.Admin(base), nil
	}
	return config.Storefront(base), nil
}

func run(c *app.Container, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopcli [login|register|profile|logout|cart|cart-add|cart-rm|cart-clear|products]")
	}
	ctx := context.Background()

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: shopcli login <username> <password>")
		}
		err := c.Session.Login(ctx, domain.Credentials{Username: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		user := c.Session.CurrentUser()
		fmt.Printf("logged in as %s (role %d)\n", user.Username, user.Role)
		return nil

	case "register":
		if len(args) != 4 {
			return fmt.Errorf("usage: shopcli register <username> <password> <email>")
		}
		return c.Session.Register(ctx, domain.Registration{
			Username: args[1], Password: args[2], Email: args[3],
		})

	case "profile":
		if err := c.Session.FetchProfile(ctx); err != nil {
			return err
		}
		user := c.Session.CurrentUser()
		if user == nil {
			return domain.ErrNotLoggedIn
		}
		fmt.Printf("%s <%s> balance=%.2f\n", user.Username, user.Email, user.Balance)
		return nil

	case "logout":
		c.Session.Logout(ctx)
		return nil

	case "cart":
		if err := c.Cart.Fetch(ctx); err != nil {
			return err
		}
		for _, item := range c.Cart.Items() {
			mark := " "
			if item.Selected {
				mark = "x"
			}
			fmt.Printf("[%s] #%d %s x%d @ %.2f\n", mark, item.ID, item.ProductName, item.Quantity, item.ProductPrice)
		}
		fmt.Printf("total: %d items, %.2f selected\n", c.Cart.TotalQuantity(), c.Cart.TotalAmount())
		return nil

	case "cart-add":
		if len(args) < 2 {
			return fmt.Errorf("usage: shopcli cart-add <productId> [quantity]")
		}
		productID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad product id: %w", err)
		}
		quantity := 1
		if len(args) > 2 {
			if quantity, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("bad quantity: %w", err)
			}
		}
		return c.Cart.AddItem(ctx, productID, quantity)

	case "cart-rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: shopcli cart-rm <itemId>")
		}
		itemID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad item id: %w", err)
		}
		return c.Cart.RemoveItem(ctx, itemID)

	case "cart-clear":
		return c.Cart.Clear(ctx)

	case "products":
		page, err := c.API.Catalog.Products(ctx, api.ProductQuery{PageSize: 20})
		if err != nil {
			return err
		}
		for _, p := range page.List {
			fmt.Printf("#%d %s %.2f (stock %d)\n", p.ID, p.Name, p.Price, p.Stock)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// drainToasts prints anything the gateway surfaced while running.
func drainToasts(c *app.Container) {
	for _, m := range c.Toasts.Messages() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", m.Type, m.Message)
	}
}
