package ingredient

// Category 商店分類
type Category string

const (
	CategoryProduce    Category = "Produce"
	CategoryMeat       Category = "Meat & Seafood"
	CategoryDairy      Category = "Dairy & Eggs"
	CategoryBakery     Category = "Bakery"
	CategoryPantry     Category = "Pantry"
	CategorySpices     Category = "Spices & Seasonings"
	CategoryCondiments Category = "Condiments & Sauces"
	CategoryFrozen     Category = "Frozen"
	CategoryBeverages  Category = "Beverages"
	CategoryOther      Category = "Other"
)

// Categories 依賣場動線排序的所有分類
var Categories = []Category{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryBakery,
	CategoryPantry,
	CategorySpices,
	CategoryCondiments,
	CategoryFrozen,
	CategoryBeverages,
	CategoryOther,
}

// DefaultCategory 無法辨識的食材歸入此分類
const DefaultCategory = CategoryPantry

// Info 食材參考資料，啟動時載入後不再修改
type Info struct {
	Name                 string   `json:"name"`
	Aliases              []string `json:"aliases"`
	Category             Category `json:"category"`
	CommonUnits          []string `json:"common_units"`
	BaseUnit             string   `json:"base_unit"`
	Density              *float64 `json:"density,omitempty"`                 // g/ml
	EstimatedCostPerUnit *float64 `json:"estimated_cost_per_unit,omitempty"` // 每 BaseUnit 的價格
	IsStaple             bool     `json:"is_staple"`
}

// Resolution 食材名稱的解析結果
type Resolution struct {
	Key      string   // 分組用的標準名稱（小寫）
	Name     string   // 顯示用名稱
	Category Category
	IsStaple bool
	Info     *Info // 無法辨識時為 nil
}
