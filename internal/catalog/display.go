package catalog

import "serpentaware/internal/models"

const defaultDangerClass = "bg-gray-100 text-gray-800"

var dangerClasses = map[models.DangerLevel]string{
	models.Harmless:       "badge-harmless",
	models.MildlyVenomous: "badge-mildly-venomous",
	models.Venomous:       "badge-venomous",
	models.HighlyVenomous: "badge-highly-venomous",
	models.Deadly:         "badge-deadly",
}

// DangerClass maps a danger level to its badge CSS class.
func DangerClass(level models.DangerLevel) string {
	if c, ok := dangerClasses[level]; ok {
		return c
	}
	return defaultDangerClass
}
