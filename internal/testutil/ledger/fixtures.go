package ledger

// Fixture is a predefined set of rows for one kind of sheet.
type Fixture struct {
	Name string
	Rows [][]any
}

// FixtureDecember holds months-mode sales: three dated in 2024-12, one in
// 2024-11 and one without a date.
var FixtureDecember = Fixture{
	Name: "december",
	Rows: [][]any{
		{"2024-12-03", " Juan Perez ", "E1"},
		{"2024-11-20", "MARIA GONZALEZ", "E2"},
		{nil, "Ferreteria Lopez", "E3"},
		{"2024-12-15", "zzz_no_match_zzz", "E4"},
		{"2024-12-31", "ferreteria lopez", "E5"},
	},
}

// FixtureDispatch holds sheet-mode rows, one per classification label.
var FixtureDispatch = Fixture{
	Name: "dispatch",
	Rows: [][]any{
		{"2024-12-03", "Juan Perez", "F", nil},
		{"2024-12-04", "Maria Gonzalez", nil, nil},
		{"2024-12-05", "Ferreteria Lopez", nil, 25.5},
		{"no es fecha", "Nadie", "X", nil},
	},
}

// FixtureWaybills holds the carrier registry matching the sales fixtures.
var FixtureWaybills = Fixture{
	Name: "waybills",
	Rows: [][]any{
		{"Juan  Pérez", "2024-12-02", "G-001", nil, "ENTREGADO"},
		{"Maria Gonzalez", "2024-12-02", "G-002", "R-9", "EN TRANSITO"},
		{"Ferreteria Lopez", "2024-12-02", "G-003", nil, "DEVUELTO"},
	},
}
