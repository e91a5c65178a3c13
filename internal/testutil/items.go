package testutil

import "github.com/roach88/homeslot/internal/item"

// App returns an item whose label equals its ID.
func App(id string) item.Item {
	return item.MustNew(id, id, "")
}

// Apps returns one App per id, in order.
func Apps(ids ...string) []item.Item {
	out := make([]item.Item, len(ids))
	for i, id := range ids {
		out[i] = App(id)
	}
	return out
}

// LauncherApps returns the allowlisted apps of the stock launcher
// configuration, with labels and icon refs.
func LauncherApps() []item.Item {
	return []item.Item{
		item.MustNew("com.android.settings", "Settings", "settings"),
		item.MustNew("com.ATS.MySlates", "MySlates", "slates"),
		item.MustNew("com.adobe.reader", "Adobe Reader", "reader"),
	}
}
