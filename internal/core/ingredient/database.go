package ingredient

func f(v float64) *float64 { return &v }

// defaultDatabase 內建的食材表，別名比對依此順序進行
var defaultDatabase = []Info{
	// Produce
	{Name: "onion", Aliases: []string{"onions", "yellow onion", "white onion", "red onion", "zwiebel", "zwiebeln"}, Category: CategoryProduce, CommonUnits: []string{"pcs", "g", "cup"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.5)},
	{Name: "garlic", Aliases: []string{"garlic clove", "garlic cloves", "clove garlic", "cloves garlic", "knoblauch"}, Category: CategoryProduce, CommonUnits: []string{"clove", "tsp", "pcs"}, BaseUnit: "clove", EstimatedCostPerUnit: f(0.1)},
	{Name: "tomato", Aliases: []string{"tomatoes", "roma tomato", "roma tomatoes", "cherry tomatoes", "tomate", "tomaten"}, Category: CategoryProduce, CommonUnits: []string{"pcs", "g", "cup"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.6)},
	{Name: "potato", Aliases: []string{"potatoes", "russet potato", "russet potatoes", "kartoffel", "kartoffeln"}, Category: CategoryProduce, CommonUnits: []string{"pcs", "g", "kg"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.4)},
	{Name: "carrot", Aliases: []string{"carrots", "karotte", "karotten", "möhre", "möhren"}, Category: CategoryProduce, CommonUnits: []string{"pcs", "g", "cup"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.25)},
	{Name: "bell pepper", Aliases: []string{"bell peppers", "red bell pepper", "green bell pepper", "paprika"}, Category: CategoryProduce, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(1.0)},
	{Name: "lettuce", Aliases: []string{"romaine", "romaine lettuce", "iceberg lettuce", "salat"}, Category: CategoryProduce, CommonUnits: []string{"head", "cup"}, BaseUnit: "head", EstimatedCostPerUnit: f(1.5)},
	{Name: "spinach", Aliases: []string{"baby spinach", "spinat"}, Category: CategoryProduce, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.01)},
	{Name: "broccoli", Aliases: []string{"broccoli florets", "brokkoli"}, Category: CategoryProduce, CommonUnits: []string{"head", "g", "cup"}, BaseUnit: "head", EstimatedCostPerUnit: f(1.8)},
	{Name: "mushroom", Aliases: []string{"mushrooms", "button mushrooms", "champignons", "pilze"}, Category: CategoryProduce, CommonUnits: []string{"g", "cup", "pcs"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.008)},
	{Name: "lemon", Aliases: []string{"lemons", "lemon juice", "zitrone"}, Category: CategoryProduce, CommonUnits: []string{"pcs", "tbsp"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.5)},
	{Name: "banana", Aliases: []string{"bananas", "banane", "bananen"}, Category: CategoryProduce, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.25)},
	{Name: "apple", Aliases: []string{"apples", "apfel", "äpfel"}, Category: CategoryProduce, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.4)},
	{Name: "avocado", Aliases: []string{"avocados"}, Category: CategoryProduce, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(1.2)},
	{Name: "cucumber", Aliases: []string{"cucumbers", "gurke"}, Category: CategoryProduce, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.7)},
	{Name: "ginger", Aliases: []string{"fresh ginger", "ginger root", "ingwer"}, Category: CategoryProduce, CommonUnits: []string{"g", "tbsp"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.02)},
	{Name: "parsley", Aliases: []string{"fresh parsley", "petersilie"}, Category: CategoryProduce, CommonUnits: []string{"bunch", "tbsp"}, BaseUnit: "bunch", EstimatedCostPerUnit: f(1.0)},
	{Name: "basil", Aliases: []string{"fresh basil", "basilikum"}, Category: CategoryProduce, CommonUnits: []string{"bunch", "leaves"}, BaseUnit: "bunch", EstimatedCostPerUnit: f(1.5)},

	// Meat & Seafood
	{Name: "chicken breast", Aliases: []string{"chicken breasts", "chicken", "chicken fillet", "hähnchenbrust", "hähnchen"}, Category: CategoryMeat, CommonUnits: []string{"g", "lb", "pcs"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.011)},
	{Name: "ground beef", Aliases: []string{"minced beef", "beef mince", "hackfleisch", "rinderhack"}, Category: CategoryMeat, CommonUnits: []string{"g", "lb"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.012)},
	{Name: "bacon", Aliases: []string{"bacon strips", "speck"}, Category: CategoryMeat, CommonUnits: []string{"slices", "g"}, BaseUnit: "slices", EstimatedCostPerUnit: f(0.4)},
	{Name: "salmon", Aliases: []string{"salmon fillet", "salmon fillets", "lachs"}, Category: CategoryMeat, CommonUnits: []string{"g", "pcs"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.03)},
	{Name: "shrimp", Aliases: []string{"shrimps", "prawns", "garnelen"}, Category: CategoryMeat, CommonUnits: []string{"g", "lb"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.025)},

	// Dairy & Eggs
	{Name: "egg", Aliases: []string{"eggs", "large egg", "large eggs", "ei", "eier"}, Category: CategoryDairy, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.3)},
	{Name: "milk", Aliases: []string{"whole milk", "skim milk", "milch"}, Category: CategoryDairy, CommonUnits: []string{"ml", "cup", "l"}, BaseUnit: "ml", Density: f(1.03), EstimatedCostPerUnit: f(0.001)},
	{Name: "butter", Aliases: []string{"unsalted butter", "salted butter"}, Category: CategoryDairy, CommonUnits: []string{"g", "tbsp"}, BaseUnit: "g", Density: f(0.911), EstimatedCostPerUnit: f(0.01)},
	{Name: "cheese", Aliases: []string{"cheddar", "cheddar cheese", "shredded cheese", "käse"}, Category: CategoryDairy, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.015)},
	{Name: "parmesan", Aliases: []string{"parmesan cheese", "parmigiano", "parmigiano reggiano"}, Category: CategoryDairy, CommonUnits: []string{"g", "tbsp"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.03)},
	{Name: "heavy cream", Aliases: []string{"cream", "whipping cream", "sahne"}, Category: CategoryDairy, CommonUnits: []string{"ml", "cup"}, BaseUnit: "ml", Density: f(0.994), EstimatedCostPerUnit: f(0.004)},
	{Name: "yogurt", Aliases: []string{"greek yogurt", "plain yogurt", "joghurt"}, Category: CategoryDairy, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.004)},

	// Bakery
	{Name: "bread", Aliases: []string{"white bread", "whole wheat bread", "brot"}, Category: CategoryBakery, CommonUnits: []string{"slices", "loaf"}, BaseUnit: "slices", EstimatedCostPerUnit: f(0.2)},
	{Name: "tortilla", Aliases: []string{"tortillas", "flour tortillas", "corn tortillas"}, Category: CategoryBakery, CommonUnits: []string{"pcs"}, BaseUnit: "pcs", EstimatedCostPerUnit: f(0.3)},

	// Pantry
	{Name: "pasta", Aliases: []string{"spaghetti", "penne", "noodles", "nudel", "nudeln"}, Category: CategoryPantry, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.003)},
	{Name: "rice", Aliases: []string{"white rice", "basmati rice", "jasmine rice", "reis"}, Category: CategoryPantry, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.003)},
	{Name: "flour", Aliases: []string{"all-purpose flour", "all purpose flour", "wheat flour", "mehl"}, Category: CategoryPantry, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", Density: f(0.593), EstimatedCostPerUnit: f(0.002), IsStaple: true},
	{Name: "sugar", Aliases: []string{"white sugar", "granulated sugar", "zucker"}, Category: CategoryPantry, CommonUnits: []string{"g", "tbsp", "cup"}, BaseUnit: "g", Density: f(0.845), EstimatedCostPerUnit: f(0.002), IsStaple: true},
	{Name: "olive oil", Aliases: []string{"extra virgin olive oil", "oil", "olivenöl", "öl"}, Category: CategoryPantry, CommonUnits: []string{"tbsp", "ml"}, BaseUnit: "tbsp", Density: f(0.91), EstimatedCostPerUnit: f(0.15), IsStaple: true},
	{Name: "vegetable oil", Aliases: []string{"canola oil", "sunflower oil"}, Category: CategoryPantry, CommonUnits: []string{"tbsp", "ml"}, BaseUnit: "tbsp", Density: f(0.92), EstimatedCostPerUnit: f(0.05), IsStaple: true},
	{Name: "canned tomatoes", Aliases: []string{"diced tomatoes", "crushed tomatoes", "tomato sauce", "passata"}, Category: CategoryPantry, CommonUnits: []string{"can", "g"}, BaseUnit: "can", EstimatedCostPerUnit: f(1.2)},
	{Name: "chicken broth", Aliases: []string{"chicken stock", "broth", "stock", "hühnerbrühe"}, Category: CategoryPantry, CommonUnits: []string{"ml", "cup"}, BaseUnit: "ml", EstimatedCostPerUnit: f(0.003)},
	{Name: "oats", Aliases: []string{"rolled oats", "oatmeal", "haferflocken"}, Category: CategoryPantry, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.004)},
	{Name: "honey", Aliases: []string{"honig"}, Category: CategoryPantry, CommonUnits: []string{"tbsp", "g"}, BaseUnit: "tbsp", Density: f(1.42), EstimatedCostPerUnit: f(0.2)},
	{Name: "baking powder", Aliases: []string{"backpulver"}, Category: CategoryPantry, CommonUnits: []string{"tsp"}, BaseUnit: "tsp", IsStaple: true},

	// Spices & Seasonings
	{Name: "salt", Aliases: []string{"sea salt", "kosher salt", "table salt", "salz"}, Category: CategorySpices, CommonUnits: []string{"tsp", "pinch", "g"}, BaseUnit: "tsp", Density: f(1.2), IsStaple: true},
	{Name: "pepper", Aliases: []string{"black pepper", "ground black pepper", "ground pepper", "pfeffer"}, Category: CategorySpices, CommonUnits: []string{"tsp", "pinch"}, BaseUnit: "tsp", IsStaple: true},
	{Name: "paprika powder", Aliases: []string{"smoked paprika", "sweet paprika", "paprikapulver"}, Category: CategorySpices, CommonUnits: []string{"tsp"}, BaseUnit: "tsp", EstimatedCostPerUnit: f(0.1)},
	{Name: "cumin", Aliases: []string{"ground cumin", "kreuzkümmel"}, Category: CategorySpices, CommonUnits: []string{"tsp"}, BaseUnit: "tsp", EstimatedCostPerUnit: f(0.1)},
	{Name: "oregano", Aliases: []string{"dried oregano"}, Category: CategorySpices, CommonUnits: []string{"tsp"}, BaseUnit: "tsp", EstimatedCostPerUnit: f(0.08)},

	// Condiments & Sauces
	{Name: "soy sauce", Aliases: []string{"sojasauce", "shoyu", "tamari"}, Category: CategoryCondiments, CommonUnits: []string{"tbsp", "ml"}, BaseUnit: "tbsp", EstimatedCostPerUnit: f(0.1)},
	{Name: "mustard", Aliases: []string{"dijon mustard", "senf"}, Category: CategoryCondiments, CommonUnits: []string{"tsp", "tbsp"}, BaseUnit: "tbsp", EstimatedCostPerUnit: f(0.08)},
	{Name: "vinegar", Aliases: []string{"white vinegar", "balsamic vinegar", "essig"}, Category: CategoryCondiments, CommonUnits: []string{"tbsp", "ml"}, BaseUnit: "tbsp", EstimatedCostPerUnit: f(0.05)},

	// Frozen
	{Name: "frozen peas", Aliases: []string{"peas", "green peas", "erbsen"}, Category: CategoryFrozen, CommonUnits: []string{"g", "cup"}, BaseUnit: "g", EstimatedCostPerUnit: f(0.004)},

	// Beverages
	{Name: "water", Aliases: []string{"cold water", "warm water", "wasser"}, Category: CategoryBeverages, CommonUnits: []string{"ml", "cup"}, BaseUnit: "ml", Density: f(1.0), IsStaple: true},
	{Name: "white wine", Aliases: []string{"dry white wine", "weißwein"}, Category: CategoryBeverages, CommonUnits: []string{"ml", "cup"}, BaseUnit: "ml", EstimatedCostPerUnit: f(0.01)},
}
