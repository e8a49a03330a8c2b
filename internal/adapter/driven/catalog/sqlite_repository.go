package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// SQLiteRepositoryImpl stores and loads catalogs in a SQLite database.
// Line, component and item positions are stored so that records come back in
// the order they were written.
type SQLiteRepositoryImpl struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dsn and creates the schema if needed.
func NewSQLiteRepository(ctx context.Context, dsn string) (*SQLiteRepositoryImpl, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	r := &SQLiteRepositoryImpl{db: db}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the database handle.
func (r *SQLiteRepositoryImpl) Close() error {
	return r.db.Close()
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ingredients (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	net_weight_grams REAL NOT NULL,
	unit_price       REAL NOT NULL,
	calories         REAL,
	protein          REAL,
	carbs            REAL,
	fat              REAL,
	saturated_fat    REAL,
	fiber            REAL,
	sugars           REAL,
	sodium           REAL,
	calcium          REAL,
	iron             REAL
);

CREATE TABLE IF NOT EXISTS recipes (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	final_weight_grams REAL NOT NULL,
	portions           INTEGER NOT NULL,
	prep_time_minutes  INTEGER,
	sell_price         REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS recipe_lines (
	recipe_id      TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	ingredient_id  TEXT NOT NULL,
	quantity_grams REAL NOT NULL,
	PRIMARY KEY (recipe_id, position)
);

CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	sell_price REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_components (
	product_id     TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	recipe_id      TEXT NOT NULL DEFAULT '',
	quantity_grams REAL NOT NULL DEFAULT 0,
	sub_product_id TEXT NOT NULL DEFAULT '',
	units          REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (product_id, position)
);

CREATE TABLE IF NOT EXISTS menus (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	sell_price REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS menu_items (
	menu_id    TEXT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	quantity   REAL NOT NULL,
	PRIMARY KEY (menu_id, position)
);

CREATE TABLE IF NOT EXISTS price_points (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	ingredient_id TEXT NOT NULL,
	supplier      TEXT NOT NULL DEFAULT '',
	observed_at   TEXT NOT NULL,
	price         REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_points_ingredient ON price_points(ingredient_id, supplier);
`

func (r *SQLiteRepositoryImpl) migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// SaveCatalog replaces the stored catalog with c in a single transaction.
func (r *SQLiteRepositoryImpl) SaveCatalog(ctx context.Context, c *entity.Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{
		"recipe_lines", "product_components", "menu_items",
		"recipes", "products", "menus", "ingredients", "price_points",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}

	for _, ing := range c.Ingredients {
		n := ing.Nutrition
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ingredients (id, name, net_weight_grams, unit_price,
				calories, protein, carbs, fat, saturated_fat, fiber, sugars, sodium, calcium, iron)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ing.ID, ing.Name, ing.NetWeightGrams, ing.UnitPrice,
			nullFloat(n.Calories), nullFloat(n.Protein), nullFloat(n.Carbs), nullFloat(n.Fat),
			nullFloat(n.SaturatedFat), nullFloat(n.Fiber), nullFloat(n.Sugars), nullFloat(n.Sodium),
			nullFloat(n.Calcium), nullFloat(n.Iron))
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert ingredient %q", ing.ID)
		}
	}

	for _, rec := range c.Recipes {
		var prep sql.NullInt64
		if rec.PrepTimeMinutes != nil {
			prep = sql.NullInt64{Int64: int64(*rec.PrepTimeMinutes), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (id, name, final_weight_grams, portions, prep_time_minutes, sell_price)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Name, rec.FinalWeightGrams, rec.Portions, prep, rec.SellPrice); err != nil {
			return eris.Wrapf(err, "sqlite: insert recipe %q", rec.ID)
		}
		for pos, l := range rec.Lines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_lines (recipe_id, position, ingredient_id, quantity_grams)
				VALUES (?, ?, ?, ?)`,
				rec.ID, pos, l.IngredientID, l.QuantityGrams); err != nil {
				return eris.Wrapf(err, "sqlite: insert line of recipe %q", rec.ID)
			}
		}
	}

	for _, p := range c.Products {
		if _, err := tx.ExecContext(ctx, `INSERT INTO products (id, name, sell_price) VALUES (?, ?, ?)`,
			p.ID, p.Name, p.SellPrice); err != nil {
			return eris.Wrapf(err, "sqlite: insert product %q", p.ID)
		}
		for pos, comp := range p.Components {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO product_components (product_id, position, recipe_id, quantity_grams, sub_product_id, units)
				VALUES (?, ?, ?, ?, ?, ?)`,
				p.ID, pos, comp.RecipeID, comp.QuantityGrams, comp.ProductID, comp.Units); err != nil {
				return eris.Wrapf(err, "sqlite: insert component of product %q", p.ID)
			}
		}
	}

	for _, m := range c.Menus {
		if _, err := tx.ExecContext(ctx, `INSERT INTO menus (id, name, sell_price) VALUES (?, ?, ?)`,
			m.ID, m.Name, m.SellPrice); err != nil {
			return eris.Wrapf(err, "sqlite: insert menu %q", m.ID)
		}
		for pos, item := range m.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO menu_items (menu_id, position, product_id, quantity) VALUES (?, ?, ?, ?)`,
				m.ID, pos, item.ProductID, item.Quantity); err != nil {
				return eris.Wrapf(err, "sqlite: insert item of menu %q", m.ID)
			}
		}
	}

	for _, pp := range c.PriceHistory {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO price_points (ingredient_id, supplier, observed_at, price) VALUES (?, ?, ?, ?)`,
			pp.IngredientID, pp.Supplier, pp.Date.Format(time.RFC3339Nano), pp.Price); err != nil {
			return eris.Wrapf(err, "sqlite: insert price point of %q", pp.IngredientID)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit")
	}
	return nil
}

// LoadCatalog reads the whole catalog.
func (r *SQLiteRepositoryImpl) LoadCatalog(ctx context.Context) (*entity.Catalog, error) {
	c := &entity.Catalog{}

	if err := r.loadIngredients(ctx, c); err != nil {
		return nil, err
	}
	if err := r.loadRecipes(ctx, c); err != nil {
		return nil, err
	}
	if err := r.loadProducts(ctx, c); err != nil {
		return nil, err
	}
	if err := r.loadMenus(ctx, c); err != nil {
		return nil, err
	}
	if err := r.loadPriceHistory(ctx, c); err != nil {
		return nil, err
	}

	c.Index()
	zap.L().Debug("catalog loaded from sqlite",
		zap.Int("ingredients", len(c.Ingredients)),
		zap.Int("recipes", len(c.Recipes)),
		zap.Int("products", len(c.Products)),
		zap.Int("price_points", len(c.PriceHistory)),
	)
	return c, nil
}

func (r *SQLiteRepositoryImpl) loadIngredients(ctx context.Context, c *entity.Catalog) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, net_weight_grams, unit_price,
			calories, protein, carbs, fat, saturated_fat, fiber, sugars, sodium, calcium, iron
		FROM ingredients ORDER BY rowid`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query ingredients")
	}
	defer rows.Close()

	for rows.Next() {
		var ing entity.Ingredient
		var cal, prot, carbs, fat, sat, fiber, sugars, sodium, calcium, iron sql.NullFloat64
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.NetWeightGrams, &ing.UnitPrice,
			&cal, &prot, &carbs, &fat, &sat, &fiber, &sugars, &sodium, &calcium, &iron); err != nil {
			return eris.Wrap(err, "sqlite: scan ingredient")
		}
		ing.Nutrition = entity.NutritionFacts{
			Calories: floatPtr(cal), Protein: floatPtr(prot), Carbs: floatPtr(carbs), Fat: floatPtr(fat),
			SaturatedFat: floatPtr(sat), Fiber: floatPtr(fiber), Sugars: floatPtr(sugars),
			Sodium: floatPtr(sodium), Calcium: floatPtr(calcium), Iron: floatPtr(iron),
		}
		c.Ingredients = append(c.Ingredients, ing)
	}
	return eris.Wrap(rows.Err(), "sqlite: iterate ingredients")
}

func (r *SQLiteRepositoryImpl) loadRecipes(ctx context.Context, c *entity.Catalog) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, final_weight_grams, portions, prep_time_minutes, sell_price
		FROM recipes ORDER BY rowid`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query recipes")
	}
	idx := map[string]int{}
	for rows.Next() {
		var rec entity.Recipe
		var prep sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.FinalWeightGrams, &rec.Portions, &prep, &rec.SellPrice); err != nil {
			rows.Close()
			return eris.Wrap(err, "sqlite: scan recipe")
		}
		if prep.Valid {
			m := int(prep.Int64)
			rec.PrepTimeMinutes = &m
		}
		idx[rec.ID] = len(c.Recipes)
		c.Recipes = append(c.Recipes, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: iterate recipes")
	}

	lines, err := r.db.QueryContext(ctx, `
		SELECT recipe_id, ingredient_id, quantity_grams
		FROM recipe_lines ORDER BY recipe_id, position`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query recipe lines")
	}
	defer lines.Close()
	for lines.Next() {
		var recipeID string
		var l entity.RecipeLine
		if err := lines.Scan(&recipeID, &l.IngredientID, &l.QuantityGrams); err != nil {
			return eris.Wrap(err, "sqlite: scan recipe line")
		}
		if i, ok := idx[recipeID]; ok {
			c.Recipes[i].Lines = append(c.Recipes[i].Lines, l)
		}
	}
	return eris.Wrap(lines.Err(), "sqlite: iterate recipe lines")
}

func (r *SQLiteRepositoryImpl) loadProducts(ctx context.Context, c *entity.Catalog) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, sell_price FROM products ORDER BY rowid`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query products")
	}
	idx := map[string]int{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SellPrice); err != nil {
			rows.Close()
			return eris.Wrap(err, "sqlite: scan product")
		}
		idx[p.ID] = len(c.Products)
		c.Products = append(c.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: iterate products")
	}

	comps, err := r.db.QueryContext(ctx, `
		SELECT product_id, recipe_id, quantity_grams, sub_product_id, units
		FROM product_components ORDER BY product_id, position`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query product components")
	}
	defer comps.Close()
	for comps.Next() {
		var productID string
		var comp entity.ProductComponent
		if err := comps.Scan(&productID, &comp.RecipeID, &comp.QuantityGrams, &comp.ProductID, &comp.Units); err != nil {
			return eris.Wrap(err, "sqlite: scan product component")
		}
		if i, ok := idx[productID]; ok {
			c.Products[i].Components = append(c.Products[i].Components, comp)
		}
	}
	return eris.Wrap(comps.Err(), "sqlite: iterate product components")
}

func (r *SQLiteRepositoryImpl) loadMenus(ctx context.Context, c *entity.Catalog) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, sell_price FROM menus ORDER BY rowid`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query menus")
	}
	idx := map[string]int{}
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(&m.ID, &m.Name, &m.SellPrice); err != nil {
			rows.Close()
			return eris.Wrap(err, "sqlite: scan menu")
		}
		idx[m.ID] = len(c.Menus)
		c.Menus = append(c.Menus, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: iterate menus")
	}

	items, err := r.db.QueryContext(ctx, `
		SELECT menu_id, product_id, quantity FROM menu_items ORDER BY menu_id, position`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query menu items")
	}
	defer items.Close()
	for items.Next() {
		var menuID string
		var item entity.MenuItem
		if err := items.Scan(&menuID, &item.ProductID, &item.Quantity); err != nil {
			return eris.Wrap(err, "sqlite: scan menu item")
		}
		if i, ok := idx[menuID]; ok {
			c.Menus[i].Items = append(c.Menus[i].Items, item)
		}
	}
	return eris.Wrap(items.Err(), "sqlite: iterate menu items")
}

func (r *SQLiteRepositoryImpl) loadPriceHistory(ctx context.Context, c *entity.Catalog) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ingredient_id, supplier, observed_at, price FROM price_points ORDER BY id`)
	if err != nil {
		return eris.Wrap(err, "sqlite: query price points")
	}
	defer rows.Close()

	for rows.Next() {
		var pp entity.PricePoint
		var observed string
		if err := rows.Scan(&pp.IngredientID, &pp.Supplier, &observed, &pp.Price); err != nil {
			return eris.Wrap(err, "sqlite: scan price point")
		}
		pp.Date, err = time.Parse(time.RFC3339Nano, observed)
		if err != nil {
			return eris.Wrapf(err, "sqlite: parse date %q", observed)
		}
		c.PriceHistory = append(c.PriceHistory, pp)
	}
	return eris.Wrap(rows.Err(), "sqlite: iterate price points")
}
