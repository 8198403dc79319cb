package storage

// DefaultPositions seeds a fresh database.
var DefaultPositions = []Position{
	{Ticker: "RKLB", Shares: 523, AvgCost: 38.14, Account: AccountChase},
	{Ticker: "NVDA", Shares: 181.79665, AvgCost: 153.99, Account: AccountChase},
	{Ticker: "SAABY", Shares: 799, AvgCost: 27.16, Account: AccountChase},
	{Ticker: "MU", Shares: 43.36685, AvgCost: 332.66, Account: AccountChase},
	{Ticker: "VTSAX", Shares: 98.233, AvgCost: 134.51, Account: AccountChase},
	{Ticker: "BRK.B", Shares: 28.10829, AvgCost: 486.49, Account: AccountChase},
	{Ticker: "QS", Shares: 1481.85422, AvgCost: 10.24, Account: AccountChase},
	{Ticker: "SNDK", Shares: 18, AvgCost: 195.94, Account: AccountChase},
	{Ticker: "INTC", Shares: 215.92714, AvgCost: 41.12, Account: AccountChase},
	{Ticker: "MSFT", Shares: 18.03129, AvgCost: 495.94, Account: AccountChase},
	{Ticker: "UAMY", Shares: 876, AvgCost: 9.03, Account: AccountChase},
	{Ticker: "RNMBY", Shares: 17, AvgCost: 390.13, Account: AccountChase},
	{Ticker: "AAPL", Shares: 22.82144, AvgCost: 254.16, Account: AccountChase},
	{Ticker: "KXIAY", Shares: 320, AvgCost: 11.68, Account: AccountChase},
	{Ticker: "ASML", Shares: 3, AvgCost: 1435, Account: AccountChase},
	{Ticker: "LYSDY", Shares: 325, AvgCost: 13.65, Account: AccountChase},
	{Ticker: "SMERY", Shares: 18, AvgCost: 181.9, Account: AccountChase},
	{Ticker: "SHWDY", Shares: 37, AvgCost: 66.69, Account: AccountChase},
	{Ticker: "COHU", Shares: 73, AvgCost: 33.79, Account: AccountChase},
	{Ticker: "ABAT", Shares: 500, AvgCost: 2.59, Account: AccountChase},
	{Ticker: "FCX", Shares: 22.73364, AvgCost: 61.89, Account: AccountChase},
	{Ticker: "TER", Shares: 8, AvgCost: 251, Account: AccountFidelity},
	{Ticker: "KRKNF", Shares: 450, AvgCost: 4.25, Account: AccountFidelity},
}
