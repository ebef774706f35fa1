package hidden

func Secret() {}
