package domain

var Tables = []interface{}{
	// System
	&SysUser{},
	&SysAuthLog{},
	// Shop
	&Category{},
	&Product{},
	&Kit{},
	&KitItem{},
}
