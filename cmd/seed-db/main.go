// Command seed-db loads the demo catalog, customers and vendors into the
// database and registers one API key per staff role.
package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/db"
	"github.com/xenking/pos-admin/internal/domain/auth"
	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/domain/vendor"
	"github.com/xenking/pos-admin/internal/repository"
	"github.com/xenking/pos-admin/internal/wire"
)

func main() {
	var (
		databaseURL  string
		seedDir      string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedDir, "seed-dir", "", "directory with products.json, customers.json and vendors.json (default: embedded data)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or POS_API_KEY_PEPPER env)")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		lg.Fatal("Database URL is required: set --database-url or DATABASE_URL")
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("POS_API_KEY_PEPPER")
	}

	var data fs.FS
	if seedDir != "" {
		data = os.DirFS(seedDir)
	} else if data, err = fs.Sub(db.Seed, "seed"); err != nil {
		lg.Fatal("Open embedded seed data", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, databaseURL, data, []byte(apiKeyPepper)); err != nil {
		lg.Fatal("Seed failed", zap.Error(err))
	}
	lg.Info("Seed completed")
}

func run(ctx context.Context, lg *zap.Logger, databaseURL string, data fs.FS, pepper []byte) error {
	lg.Info("Connecting to database")
	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	s := seeder{
		lg:        lg,
		data:      data,
		products:  product.NewService(repository.NewProductRepository(pool)),
		customers: customer.NewService(repository.NewCustomerRepository(pool)),
		vendors:   vendor.NewService(repository.NewVendorRepository(pool)),
		keys:      repository.NewAPIKeyRepository(pool),
	}
	for _, step := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"products", s.seedProducts},
		{"customers", s.seedCustomers},
		{"vendors", s.seedVendors},
	} {
		if err := step.fn(ctx); err != nil {
			return errors.Wrapf(err, "seed %s", step.name)
		}
	}
	if err := s.seedAPIKeys(ctx, pepper); err != nil {
		return errors.Wrap(err, "seed api keys")
	}
	return nil
}

type seeder struct {
	lg        *zap.Logger
	data      fs.FS
	products  *product.Service
	customers *customer.Service
	vendors   *vendor.Service
	keys      auth.Repository
}

func (s *seeder) decoder(name string) (*jx.Decoder, error) {
	raw, err := fs.ReadFile(s.data, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return jx.DecodeBytes(raw), nil
}

// seedProducts creates catalog products, skipping SKUs that already exist.
func (s *seeder) seedProducts(ctx context.Context) error {
	d, err := s.decoder("products.json")
	if err != nil {
		return err
	}
	products, err := wire.DecodeProducts(d)
	if err != nil {
		return errors.Wrap(err, "decode products")
	}

	created := 0
	for i := range products {
		p := &products[i]
		err := s.products.Create(ctx, p)
		switch {
		case errors.Is(err, product.ErrDuplicateSKU):
			s.lg.Info("Product exists, skipping", zap.String("sku", p.SKU))
		case err != nil:
			return errors.Wrapf(err, "create product %s", p.SKU)
		default:
			created++
		}
	}
	s.lg.Info("Products seeded", zap.Int("created", created), zap.Int("total", len(products)))
	return nil
}

// seedCustomers creates customers, skipping emails that already exist.
func (s *seeder) seedCustomers(ctx context.Context) error {
	d, err := s.decoder("customers.json")
	if err != nil {
		return err
	}
	inputs, err := wire.DecodeCustomerInputs(d)
	if err != nil {
		return errors.Wrap(err, "decode customers")
	}

	created := 0
	for _, in := range inputs {
		_, err := s.customers.Create(ctx, in)
		switch {
		case errors.Is(err, customer.ErrDuplicateEmail):
			s.lg.Info("Customer exists, skipping", zap.String("email", in.Email))
		case err != nil:
			return errors.Wrapf(err, "create customer %s", in.Email)
		default:
			created++
		}
	}
	s.lg.Info("Customers seeded", zap.Int("created", created), zap.Int("total", len(inputs)))
	return nil
}

// seedVendors creates vendors whose email is not yet registered.
func (s *seeder) seedVendors(ctx context.Context) error {
	d, err := s.decoder("vendors.json")
	if err != nil {
		return err
	}
	vendors, err := wire.DecodeVendors(d)
	if err != nil {
		return errors.Wrap(err, "decode vendors")
	}

	existing, err := s.vendors.List(ctx, vendor.Filter{})
	if err != nil {
		return errors.Wrap(err, "list vendors")
	}
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v.Email] = true
	}

	created := 0
	for i := range vendors {
		v := &vendors[i]
		if seen[strings.ToLower(strings.TrimSpace(v.Email))] {
			s.lg.Info("Vendor exists, skipping", zap.String("email", v.Email))
			continue
		}
		if err := s.vendors.Create(ctx, v); err != nil {
			return errors.Wrapf(err, "create vendor %s", v.Company)
		}
		created++
	}
	s.lg.Info("Vendors seeded", zap.Int("created", created), zap.Int("total", len(vendors)))
	return nil
}

// seedAPIKeys registers one key per role. A key is read from
// POS_SEED_<ROLE>_KEY or generated and logged once.
func (s *seeder) seedAPIKeys(ctx context.Context, pepper []byte) error {
	for _, role := range auth.Roles {
		env := "POS_SEED_" + strings.ToUpper(string(role)) + "_KEY"
		key := os.Getenv(env)
		generated := key == ""
		if generated {
			key = uuid.NewString()
		}

		if err := s.keys.Create(ctx, &auth.APIKeyInfo{
			ID:      "seed-" + string(role),
			KeyHash: auth.HashKey(pepper, key),
			Name:    "Default " + string(role),
			Role:    role,
		}); err != nil {
			return errors.Wrapf(err, "create %s key", role)
		}

		fields := []zap.Field{zap.String("role", string(role)), zap.String("env", env)}
		if generated {
			fields = append(fields, zap.String("key", key))
		}
		s.lg.Info("API key registered", fields...)
	}
	return nil
}
