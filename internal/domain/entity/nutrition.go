package entity

// NutritionFacts holds nutrition per 100 g as supplied by the catalog.
// Any field may be absent; absent values count as zero.
type NutritionFacts struct {
	Calories     *float64 `json:"calories,omitempty" yaml:"calories,omitempty" toml:"calories,omitempty"`
	Protein      *float64 `json:"protein,omitempty" yaml:"protein,omitempty" toml:"protein,omitempty"`
	Carbs        *float64 `json:"carbs,omitempty" yaml:"carbs,omitempty" toml:"carbs,omitempty"`
	Fat          *float64 `json:"fat,omitempty" yaml:"fat,omitempty" toml:"fat,omitempty"`
	SaturatedFat *float64 `json:"saturated_fat,omitempty" yaml:"saturated_fat,omitempty" toml:"saturated_fat,omitempty"`
	Fiber        *float64 `json:"fiber,omitempty" yaml:"fiber,omitempty" toml:"fiber,omitempty"`
	Sugars       *float64 `json:"sugars,omitempty" yaml:"sugars,omitempty" toml:"sugars,omitempty"`
	Sodium       *float64 `json:"sodium,omitempty" yaml:"sodium,omitempty" toml:"sodium,omitempty"`
	Calcium      *float64 `json:"calcium,omitempty" yaml:"calcium,omitempty" toml:"calcium,omitempty"`
	Iron         *float64 `json:"iron,omitempty" yaml:"iron,omitempty" toml:"iron,omitempty"`
}

// Dense converts the nullable facts into a Nutrients value, defaulting missing fields to 0.
func (f NutritionFacts) Dense() Nutrients {
	v := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return Nutrients{
		Calories:     v(f.Calories),
		Protein:      v(f.Protein),
		Carbs:        v(f.Carbs),
		Fat:          v(f.Fat),
		SaturatedFat: v(f.SaturatedFat),
		Fiber:        v(f.Fiber),
		Sugars:       v(f.Sugars),
		Sodium:       v(f.Sodium),
		Calcium:      v(f.Calcium),
		Iron:         v(f.Iron),
	}
}

// Nutrients is a dense set of nutrient amounts. Energy in kcal, sodium,
// calcium and iron in mg, everything else in grams.
//
// Field order is the fold order used by every arithmetic method.
type Nutrients struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	SaturatedFat float64 `json:"saturated_fat"`
	Fiber        float64 `json:"fiber"`
	Sugars       float64 `json:"sugars"`
	Sodium       float64 `json:"sodium"`
	Calcium      float64 `json:"calcium"`
	Iron         float64 `json:"iron"`
}

// Add returns n + o, field by field.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories:     n.Calories + o.Calories,
		Protein:      n.Protein + o.Protein,
		Carbs:        n.Carbs + o.Carbs,
		Fat:          n.Fat + o.Fat,
		SaturatedFat: n.SaturatedFat + o.SaturatedFat,
		Fiber:        n.Fiber + o.Fiber,
		Sugars:       n.Sugars + o.Sugars,
		Sodium:       n.Sodium + o.Sodium,
		Calcium:      n.Calcium + o.Calcium,
		Iron:         n.Iron + o.Iron,
	}
}

// Scale multiplies every field by factor.
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		Calories:     n.Calories * factor,
		Protein:      n.Protein * factor,
		Carbs:        n.Carbs * factor,
		Fat:          n.Fat * factor,
		SaturatedFat: n.SaturatedFat * factor,
		Fiber:        n.Fiber * factor,
		Sugars:       n.Sugars * factor,
		Sodium:       n.Sodium * factor,
		Calcium:      n.Calcium * factor,
		Iron:         n.Iron * factor,
	}
}

// Div divides every field by divisor. No zero guard.
func (n Nutrients) Div(divisor float64) Nutrients {
	return Nutrients{
		Calories:     n.Calories / divisor,
		Protein:      n.Protein / divisor,
		Carbs:        n.Carbs / divisor,
		Fat:          n.Fat / divisor,
		SaturatedFat: n.SaturatedFat / divisor,
		Fiber:        n.Fiber / divisor,
		Sugars:       n.Sugars / divisor,
		Sodium:       n.Sodium / divisor,
		Calcium:      n.Calcium / divisor,
		Iron:         n.Iron / divisor,
	}
}
