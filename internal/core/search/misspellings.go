package search

// defaultMisspellings 標準詞 -> 常見錯字與翻譯
// 比對時標準詞與所有變體互為同義
var defaultMisspellings = map[string][]string{
	"chicken":    {"chiken", "chickn", "chikcen", "chicen", "hähnchen", "hahnchen", "huhn", "hühnchen"},
	"pasta":      {"psta", "pastaa", "nudel", "nudeln", "noodle", "noodles"},
	"spaghetti":  {"spagetti", "spagheti", "spaghety", "spageti"},
	"tomato":     {"tomatoe", "tomatos", "tomate", "tomaten"},
	"potato":     {"potatoe", "potatos", "kartoffel", "kartoffeln"},
	"broccoli":   {"brocoli", "brocolli", "brokkoli"},
	"zucchini":   {"zuchini", "zucchine", "courgette"},
	"avocado":    {"avacado", "avocato"},
	"lasagna":    {"lasagne", "lasanga"},
	"salmon":     {"samon", "salmom", "lachs"},
	"beef":       {"beaf", "rind", "rindfleisch"},
	"cheese":     {"chese", "cheeze", "käse", "kase"},
	"mushroom":   {"mushrom", "mushroon", "pilz", "pilze", "champignon"},
	"rice":       {"rise", "reis"},
	"soup":       {"soop", "suppe"},
	"salad":      {"salat", "sallad"},
	"egg":        {"eggs", "eier"},
	"cinnamon":   {"cinamon", "cinnamin", "zimt"},
	"vegetarian": {"vegitarian", "vegeterian", "vegetarisch"},
	"curry":      {"cury", "currie"},
}
