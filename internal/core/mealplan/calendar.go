package mealplan

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

type mealTime struct {
	hour, minute int
	duration     time.Duration
}

// 各餐別的固定時段
var mealTimes = map[MealType]mealTime{
	Breakfast: {8, 0, 30 * time.Minute},
	Lunch:     {12, 30, 45 * time.Minute},
	Snacks:    {16, 0, 15 * time.Minute},
	Dinner:    {19, 0, time.Hour},
}

// ExportCalendar 輸出 iCalendar，每個餐點格一個事件
func ExportCalendar(plan *MealPlan) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SmartPlates//Meal Plan//EN")
	cal.SetXWRCalName(plan.Name)

	stamp := plan.UpdatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}

	y, m, d := plan.WeekStart.Date()
	loc := plan.WeekStart.Location()

	plan.Each(func(day int, meal MealType, idx int, slot *MealSlot) {
		mt := mealTimes[meal]
		start := time.Date(y, m, d+day, mt.hour, mt.minute, 0, 0, loc)

		event := cal.AddEvent(fmt.Sprintf("%s-%d-%s-%d@smartplates", plan.ID, day, meal, idx))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(mt.duration))
		event.SetSummary(fmt.Sprintf("%s: %s", mealLabel(meal), slotTitle(slot)))
		if desc := slotDescription(slot); desc != "" {
			event.SetDescription(desc)
		}
	})

	return cal.Serialize()
}

func mealLabel(meal MealType) string {
	s := string(meal)
	return strings.ToUpper(s[:1]) + s[1:]
}

func slotTitle(slot *MealSlot) string {
	switch {
	case slot.RecipeName != "":
		return slot.RecipeName
	case slot.Recipe != nil && slot.Recipe.Title != "":
		return slot.Recipe.Title
	default:
		return slot.RecipeID
	}
}

func slotDescription(slot *MealSlot) string {
	var parts []string
	if slot.Servings > 0 {
		parts = append(parts, fmt.Sprintf("Servings: %d", slot.Servings))
	}
	if slot.Notes != "" {
		parts = append(parts, slot.Notes)
	}
	return strings.Join(parts, "\n")
}
