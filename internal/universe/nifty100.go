package universe

// nifty100 maps NSE symbols to company names. Index membership is rebalanced
// semi-annually; override with universe.static when it drifts.
var nifty100 = []struct{ symbol, name string }{
	{"ABB", "ABB India"},
	{"ADANIENSOL", "Adani Energy Solutions"},
	{"ADANIENT", "Adani Enterprises"},
	{"ADANIGREEN", "Adani Green Energy"},
	{"ADANIPORTS", "Adani Ports and SEZ"},
	{"ADANIPOWER", "Adani Power"},
	{"AMBUJACEM", "Ambuja Cements"},
	{"APOLLOHOSP", "Apollo Hospitals"},
	{"ASIANPAINT", "Asian Paints"},
	{"ATGL", "Adani Total Gas"},
	{"AXISBANK", "Axis Bank"},
	{"BAJAJ-AUTO", "Bajaj Auto"},
	{"BAJAJFINSV", "Bajaj Finserv"},
	{"BAJAJHLDNG", "Bajaj Holdings"},
	{"BAJFINANCE", "Bajaj Finance"},
	{"BANKBARODA", "Bank of Baroda"},
	{"BEL", "Bharat Electronics"},
	{"BHARTIARTL", "Bharti Airtel"},
	{"BOSCHLTD", "Bosch"},
	{"BPCL", "Bharat Petroleum"},
	{"BRITANNIA", "Britannia Industries"},
	{"CANBK", "Canara Bank"},
	{"CHOLAFIN", "Cholamandalam Investment"},
	{"CIPLA", "Cipla"},
	{"COALINDIA", "Coal India"},
	{"DABUR", "Dabur India"},
	{"DIVISLAB", "Divi's Laboratories"},
	{"DLF", "DLF"},
	{"DMART", "Avenue Supermarts"},
	{"DRREDDY", "Dr. Reddy's Laboratories"},
	{"EICHERMOT", "Eicher Motors"},
	{"GAIL", "GAIL India"},
	{"GODREJCP", "Godrej Consumer Products"},
	{"GRASIM", "Grasim Industries"},
	{"HAL", "Hindustan Aeronautics"},
	{"HAVELLS", "Havells India"},
	{"HCLTECH", "HCL Technologies"},
	{"HDFCBANK", "HDFC Bank"},
	{"HDFCLIFE", "HDFC Life Insurance"},
	{"HEROMOTOCO", "Hero MotoCorp"},
	{"HINDALCO", "Hindalco Industries"},
	{"HINDUNILVR", "Hindustan Unilever"},
	{"ICICIBANK", "ICICI Bank"},
	{"ICICIGI", "ICICI Lombard General Insurance"},
	{"ICICIPRULI", "ICICI Prudential Life Insurance"},
	{"INDIGO", "InterGlobe Aviation"},
	{"INDUSINDBK", "IndusInd Bank"},
	{"INFY", "Infosys"},
	{"IOC", "Indian Oil Corporation"},
	{"IRCTC", "IRCTC"},
	{"IRFC", "Indian Railway Finance Corporation"},
	{"ITC", "ITC"},
	{"JINDALSTEL", "Jindal Steel & Power"},
	{"JIOFIN", "Jio Financial Services"},
	{"JSWENERGY", "JSW Energy"},
	{"JSWSTEEL", "JSW Steel"},
	{"KOTAKBANK", "Kotak Mahindra Bank"},
	{"LICI", "Life Insurance Corporation of India"},
	{"LODHA", "Macrotech Developers"},
	{"LT", "Larsen & Toubro"},
	{"LTIM", "LTIMindtree"},
	{"M&M", "Mahindra & Mahindra"},
	{"MARUTI", "Maruti Suzuki"},
	{"MOTHERSON", "Samvardhana Motherson"},
	{"NAUKRI", "Info Edge"},
	{"NESTLEIND", "Nestle India"},
	{"NHPC", "NHPC"},
	{"NTPC", "NTPC"},
	{"ONGC", "Oil and Natural Gas Corporation"},
	{"PFC", "Power Finance Corporation"},
	{"PIDILITIND", "Pidilite Industries"},
	{"PNB", "Punjab National Bank"},
	{"POWERGRID", "Power Grid Corporation"},
	{"RECLTD", "REC"},
	{"RELIANCE", "Reliance Industries"},
	{"SBILIFE", "SBI Life Insurance"},
	{"SBIN", "State Bank of India"},
	{"SHREECEM", "Shree Cement"},
	{"SHRIRAMFIN", "Shriram Finance"},
	{"SIEMENS", "Siemens"},
	{"SUNPHARMA", "Sun Pharmaceutical"},
	{"TATACONSUM", "Tata Consumer Products"},
	{"TATAMOTORS", "Tata Motors"},
	{"TATAPOWER", "Tata Power"},
	{"TATASTEEL", "Tata Steel"},
	{"TCS", "Tata Consultancy Services"},
	{"TECHM", "Tech Mahindra"},
	{"TITAN", "Titan Company"},
	{"TORNTPHARM", "Torrent Pharmaceuticals"},
	{"TRENT", "Trent"},
	{"TVSMOTOR", "TVS Motor Company"},
	{"ULTRACEMCO", "UltraTech Cement"},
	{"UNITDSPBNK", "United Spirits"},
	{"VBL", "Varun Beverages"},
	{"VEDL", "Vedanta"},
	{"WIPRO", "Wipro"},
	{"ZOMATO", "Zomato"},
	{"ZYDUSLIFE", "Zydus Lifesciences"},
	{"BAJAJHFL", "Bajaj Housing Finance"},
	{"SWIGGY", "Swiggy"},
}
