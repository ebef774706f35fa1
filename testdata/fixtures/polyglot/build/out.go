package build

func Generated() {}
