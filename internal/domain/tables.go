package domain

var Tables = []interface{}{
	&OrderLog{},
}
