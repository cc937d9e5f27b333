package timezone

// Shortcut and abbreviation table. Keys are lowercase queries, values are
// canonical IANA identifiers. Checked before any database lookup so that
// ambiguous abbreviations like "ist" resolve deterministically.
var aliasTable = map[string]string{
	// US abbreviations
	"pst": "America/Los_Angeles",
	"pdt": "America/Los_Angeles",
	"mst": "America/Denver",
	"mdt": "America/Denver",
	"cst": "America/Chicago",
	"cdt": "America/Chicago",
	"est": "America/New_York",
	"edt": "America/New_York",
	"et":  "America/New_York",
	"pt":  "America/Los_Angeles",
	"ct":  "America/Chicago",
	"mt":  "America/Denver",

	// City shortcuts
	"nyc":        "America/New_York",
	"la":         "America/Los_Angeles",
	"sf":         "America/Los_Angeles",
	"chicago":    "America/Chicago",
	"denver":     "America/Denver",
	"london":     "Europe/London",
	"paris":      "Europe/Paris",
	"berlin":     "Europe/Berlin",
	"tokyo":      "Asia/Tokyo",
	"sydney":     "Australia/Sydney",
	"melbourne":  "Australia/Melbourne",
	"dubai":      "Asia/Dubai",
	"singapore":  "Asia/Singapore",
	"hongkong":   "Asia/Hong_Kong",
	"hk":         "Asia/Hong_Kong",
	"seoul":      "Asia/Seoul",
	"mumbai":     "Asia/Kolkata",
	"delhi":      "Asia/Kolkata",
	"moscow":     "Europe/Moscow",
	"amsterdam":  "Europe/Amsterdam",
	"zurich":     "Europe/Zurich",
	"toronto":    "America/Toronto",
	"vancouver":  "America/Vancouver",
	"tashkent":   "Asia/Tashkent",
	"istanbul":   "Europe/Istanbul",
	"casablanca": "Africa/Casablanca",
	"cairo":      "Africa/Cairo",
	"belgrade":   "Europe/Belgrade",
	"bucharest":  "Europe/Bucharest",
	"sofia":      "Europe/Sofia",
	"zagreb":     "Europe/Zagreb",

	// European abbreviations
	"uk":  "Europe/London",
	"gmt": "Europe/London",
	"utc": "UTC",
	"cet": "Europe/Paris",
	"eet": "Europe/Helsinki",
	"wet": "Europe/Lisbon",

	// Asian abbreviations
	"jst": "Asia/Tokyo",
	"kst": "Asia/Seoul",
	"ist": "Asia/Kolkata",
	"hkt": "Asia/Hong_Kong",
	"sgt": "Asia/Singapore",

	// Australian abbreviations
	"aest": "Australia/Sydney",
	"aedt": "Australia/Sydney",
	"awst": "Australia/Perth",
}

// Country name to its default (most populous) zone.
var countryDefaultZone = map[string]string{
	"japan":          "Asia/Tokyo",
	"south korea":    "Asia/Seoul",
	"korea":          "Asia/Seoul",
	"india":          "Asia/Kolkata",
	"china":          "Asia/Shanghai",
	"taiwan":         "Asia/Taipei",
	"thailand":       "Asia/Bangkok",
	"indonesia":      "Asia/Jakarta",
	"philippines":    "Asia/Manila",
	"malaysia":       "Asia/Kuala_Lumpur",
	"vietnam":        "Asia/Ho_Chi_Minh",
	"pakistan":       "Asia/Karachi",
	"bangladesh":     "Asia/Dhaka",
	"iran":           "Asia/Tehran",
	"israel":         "Asia/Jerusalem",
	"saudi arabia":   "Asia/Riyadh",
	"uae":            "Asia/Dubai",
	"uzbekistan":     "Asia/Tashkent",
	"kazakhstan":     "Asia/Almaty",
	"germany":        "Europe/Berlin",
	"france":         "Europe/Paris",
	"italy":          "Europe/Rome",
	"spain":          "Europe/Madrid",
	"portugal":       "Europe/Lisbon",
	"netherlands":    "Europe/Amsterdam",
	"belgium":        "Europe/Brussels",
	"austria":        "Europe/Vienna",
	"switzerland":    "Europe/Zurich",
	"sweden":         "Europe/Stockholm",
	"norway":         "Europe/Oslo",
	"denmark":        "Europe/Copenhagen",
	"finland":        "Europe/Helsinki",
	"poland":         "Europe/Warsaw",
	"czech republic": "Europe/Prague",
	"hungary":        "Europe/Budapest",
	"greece":         "Europe/Athens",
	"turkey":         "Europe/Istanbul",
	"russia":         "Europe/Moscow",
	"ukraine":        "Europe/Kyiv",
	"ireland":        "Europe/Dublin",
	"serbia":         "Europe/Belgrade",
	"romania":        "Europe/Bucharest",
	"bulgaria":       "Europe/Sofia",
	"croatia":        "Europe/Zagreb",
	"brazil":         "America/Sao_Paulo",
	"mexico":         "America/Mexico_City",
	"argentina":      "America/Argentina/Buenos_Aires",
	"peru":           "America/Lima",
	"colombia":       "America/Bogota",
	"chile":          "America/Santiago",
	"canada":         "America/Toronto",
	"australia":      "Australia/Sydney",
	"new zealand":    "Pacific/Auckland",
	"fiji":           "Pacific/Fiji",
	"egypt":          "Africa/Cairo",
	"south africa":   "Africa/Johannesburg",
	"nigeria":        "Africa/Lagos",
	"kenya":          "Africa/Nairobi",
	"morocco":        "Africa/Casablanca",
}

// Zone to ISO 3166-1 alpha-2 country code, for flag and country display.
var zoneCountryCode = map[string]string{
	"America/New_York":               "US",
	"America/Los_Angeles":            "US",
	"America/Chicago":                "US",
	"America/Denver":                 "US",
	"America/Phoenix":                "US",
	"America/Anchorage":              "US",
	"Pacific/Honolulu":               "US",
	"America/Toronto":                "CA",
	"America/Vancouver":              "CA",
	"America/Edmonton":               "CA",
	"America/Winnipeg":               "CA",
	"America/Halifax":                "CA",
	"America/St_Johns":               "CA",
	"America/Mexico_City":            "MX",
	"America/Tijuana":                "MX",
	"America/Cancun":                 "MX",
	"America/Sao_Paulo":              "BR",
	"America/Manaus":                 "BR",
	"America/Fortaleza":              "BR",
	"America/Buenos_Aires":           "AR",
	"America/Argentina/Buenos_Aires": "AR",
	"America/Lima":                   "PE",
	"America/Bogota":                 "CO",
	"America/Santiago":               "CL",
	"America/Caracas":                "VE",
	"America/Montevideo":             "UY",
	"America/La_Paz":                 "BO",
	"America/Guayaquil":              "EC",
	"America/Panama":                 "PA",
	"America/Havana":                 "CU",
	"America/Jamaica":                "JM",
	"America/Guatemala":              "GT",
	"America/Costa_Rica":             "CR",
	"America/Santo_Domingo":          "DO",
	"America/Puerto_Rico":            "PR",

	"Europe/London":     "GB",
	"Europe/Paris":      "FR",
	"Europe/Berlin":     "DE",
	"Europe/Rome":       "IT",
	"Europe/Madrid":     "ES",
	"Europe/Amsterdam":  "NL",
	"Europe/Brussels":   "BE",
	"Europe/Vienna":     "AT",
	"Europe/Zurich":     "CH",
	"Europe/Stockholm":  "SE",
	"Europe/Oslo":       "NO",
	"Europe/Copenhagen": "DK",
	"Europe/Helsinki":   "FI",
	"Europe/Warsaw":     "PL",
	"Europe/Prague":     "CZ",
	"Europe/Budapest":   "HU",
	"Europe/Athens":     "GR",
	"Europe/Istanbul":   "TR",
	"Europe/Moscow":     "RU",
	"Europe/Kiev":       "UA",
	"Europe/Kyiv":       "UA",
	"Europe/Lisbon":     "PT",
	"Europe/Dublin":     "IE",
	"Europe/Belgrade":   "RS",
	"Europe/Bucharest":  "RO",
	"Europe/Sofia":      "BG",
	"Europe/Zagreb":     "HR",
	"Europe/Ljubljana":  "SI",
	"Europe/Bratislava": "SK",
	"Europe/Sarajevo":   "BA",
	"Europe/Skopje":     "MK",
	"Europe/Podgorica":  "ME",
	"Europe/Tirana":     "AL",
	"Europe/Riga":       "LV",
	"Europe/Vilnius":    "LT",
	"Europe/Tallinn":    "EE",
	"Europe/Minsk":      "BY",
	"Europe/Chisinau":   "MD",
	"Europe/Luxembourg": "LU",
	"Europe/Monaco":     "MC",
	"Europe/Malta":      "MT",
	"Europe/Andorra":    "AD",
	"Europe/San_Marino": "SM",
	"Europe/Samara":     "RU",
	"Europe/Volgograd":  "RU",
	"Europe/Kaliningrad": "RU",
	"Asia/Yekaterinburg": "RU",
	"Asia/Novosibirsk":   "RU",
	"Asia/Vladivostok":   "RU",
	"Asia/Krasnoyarsk":   "RU",
	"Asia/Irkutsk":       "RU",

	"Asia/Tokyo":        "JP",
	"Asia/Seoul":        "KR",
	"Asia/Shanghai":     "CN",
	"Asia/Urumqi":       "CN",
	"Asia/Hong_Kong":    "HK",
	"Asia/Macau":        "MO",
	"Asia/Singapore":    "SG",
	"Asia/Bangkok":      "TH",
	"Asia/Jakarta":      "ID",
	"Asia/Makassar":     "ID",
	"Asia/Manila":       "PH",
	"Asia/Kuala_Lumpur": "MY",
	"Asia/Ho_Chi_Minh":  "VN",
	"Asia/Kolkata":      "IN",
	"Asia/Dubai":        "AE",
	"Asia/Riyadh":       "SA",
	"Asia/Qatar":        "QA",
	"Asia/Kuwait":       "KW",
	"Asia/Bahrain":      "BH",
	"Asia/Muscat":       "OM",
	"Asia/Tehran":       "IR",
	"Asia/Jerusalem":    "IL",
	"Asia/Tel_Aviv":     "IL",
	"Asia/Beirut":       "LB",
	"Asia/Damascus":     "SY",
	"Asia/Amman":        "JO",
	"Asia/Baghdad":      "IQ",
	"Asia/Tashkent":     "UZ",
	"Asia/Samarkand":    "UZ",
	"Asia/Almaty":       "KZ",
	"Asia/Aqtobe":       "KZ",
	"Asia/Bishkek":      "KG",
	"Asia/Dushanbe":     "TJ",
	"Asia/Ashgabat":     "TM",
	"Asia/Baku":         "AZ",
	"Asia/Yerevan":      "AM",
	"Asia/Tbilisi":      "GE",
	"Asia/Karachi":      "PK",
	"Asia/Dhaka":        "BD",
	"Asia/Kathmandu":    "NP",
	"Asia/Colombo":      "LK",
	"Asia/Yangon":       "MM",
	"Asia/Phnom_Penh":   "KH",
	"Asia/Vientiane":    "LA",
	"Asia/Taipei":       "TW",
	"Asia/Ulaanbaatar":  "MN",
	"Asia/Kabul":        "AF",
	"Asia/Nicosia":      "CY",

	"Australia/Sydney":    "AU",
	"Australia/Melbourne": "AU",
	"Australia/Brisbane":  "AU",
	"Australia/Perth":     "AU",
	"Australia/Adelaide":  "AU",
	"Australia/Darwin":    "AU",
	"Australia/Hobart":    "AU",
	"Pacific/Auckland":    "NZ",
	"Pacific/Fiji":        "FJ",
	"Pacific/Guam":        "GU",
	"Pacific/Port_Moresby": "PG",
	"Pacific/Tahiti":       "PF",
	"Pacific/Apia":         "WS",

	"Africa/Cairo":        "EG",
	"Africa/Johannesburg": "ZA",
	"Africa/Lagos":        "NG",
	"Africa/Nairobi":      "KE",
	"Africa/Casablanca":   "MA",
	"Africa/Algiers":      "DZ",
	"Africa/Tunis":        "TN",
	"Africa/Tripoli":      "LY",
	"Africa/Accra":        "GH",
	"Africa/Addis_Ababa":  "ET",
	"Africa/Dar_es_Salaam": "TZ",
	"Africa/Kampala":       "UG",
	"Africa/Khartoum":      "SD",
	"Africa/Kinshasa":      "CD",
	"Africa/Luanda":        "AO",
	"Africa/Harare":        "ZW",
	"Africa/Lusaka":        "ZM",
	"Africa/Maputo":        "MZ",
	"Africa/Dakar":         "SN",
	"Africa/Abidjan":       "CI",

	"Atlantic/Reykjavik": "IS",
	"Atlantic/Azores":    "PT",
	"Atlantic/Canary":    "ES",
	"Indian/Maldives":    "MV",
	"Indian/Mauritius":   "MU",
}

// ISO alpha-2 code to English country name, for the zones above.
var countryNames = map[string]string{
	"US": "USA", "CA": "Canada", "MX": "Mexico", "BR": "Brazil",
	"AR": "Argentina", "PE": "Peru", "CO": "Colombia", "CL": "Chile",
	"VE": "Venezuela", "UY": "Uruguay", "BO": "Bolivia", "EC": "Ecuador",
	"PA": "Panama", "CU": "Cuba", "JM": "Jamaica", "GT": "Guatemala",
	"CR": "Costa Rica", "DO": "Dominican Republic", "PR": "Puerto Rico",
	"GB": "UK", "FR": "France", "DE": "Germany", "IT": "Italy",
	"ES": "Spain", "NL": "Netherlands", "BE": "Belgium", "AT": "Austria",
	"CH": "Switzerland", "SE": "Sweden", "NO": "Norway", "DK": "Denmark",
	"FI": "Finland", "PL": "Poland", "CZ": "Czech Republic", "HU": "Hungary",
	"GR": "Greece", "TR": "Turkey", "RU": "Russia", "UA": "Ukraine",
	"PT": "Portugal", "IE": "Ireland", "RS": "Serbia", "RO": "Romania",
	"BG": "Bulgaria", "HR": "Croatia", "SI": "Slovenia", "SK": "Slovakia",
	"BA": "Bosnia", "MK": "North Macedonia", "ME": "Montenegro",
	"AL": "Albania", "LV": "Latvia", "LT": "Lithuania", "EE": "Estonia",
	"BY": "Belarus", "MD": "Moldova", "LU": "Luxembourg", "MC": "Monaco",
	"MT": "Malta", "AD": "Andorra", "SM": "San Marino", "IS": "Iceland",
	"CY": "Cyprus",
	"JP": "Japan", "KR": "South Korea", "CN": "China", "HK": "Hong Kong",
	"MO": "Macau", "SG": "Singapore", "TH": "Thailand", "ID": "Indonesia",
	"PH": "Philippines", "MY": "Malaysia", "VN": "Vietnam", "IN": "India",
	"AE": "UAE", "SA": "Saudi Arabia", "QA": "Qatar", "KW": "Kuwait",
	"BH": "Bahrain", "OM": "Oman", "IR": "Iran", "IL": "Israel",
	"LB": "Lebanon", "SY": "Syria", "JO": "Jordan", "IQ": "Iraq",
	"UZ": "Uzbekistan", "KZ": "Kazakhstan", "KG": "Kyrgyzstan",
	"TJ": "Tajikistan", "TM": "Turkmenistan", "AZ": "Azerbaijan",
	"AM": "Armenia", "GE": "Georgia", "PK": "Pakistan", "BD": "Bangladesh",
	"NP": "Nepal", "LK": "Sri Lanka", "MM": "Myanmar", "KH": "Cambodia",
	"LA": "Laos", "TW": "Taiwan", "MN": "Mongolia", "AF": "Afghanistan",
	"AU": "Australia", "NZ": "New Zealand", "FJ": "Fiji", "GU": "Guam",
	"PG": "Papua New Guinea", "PF": "French Polynesia", "WS": "Samoa",
	"EG": "Egypt", "ZA": "South Africa", "NG": "Nigeria", "KE": "Kenya",
	"MA": "Morocco", "DZ": "Algeria", "TN": "Tunisia", "LY": "Libya",
	"GH": "Ghana", "ET": "Ethiopia", "TZ": "Tanzania", "UG": "Uganda",
	"SD": "Sudan", "CD": "DR Congo", "AO": "Angola", "ZW": "Zimbabwe",
	"ZM": "Zambia", "MZ": "Mozambique", "SN": "Senegal", "CI": "Ivory Coast",
	"MV": "Maldives", "MU": "Mauritius",
}

// Clock face emoji per hour of day.
var clockEmojis = [24]string{
	"🕛", "🕐", "🕑", "🕒", "🕓", "🕔", "🕕", "🕖", "🕗", "🕘", "🕙", "🕚",
	"🕛", "🕐", "🕑", "🕒", "🕓", "🕔", "🕕", "🕖", "🕗", "🕘", "🕙", "🕚",
}

// Zone identifiers searched by the case-insensitive, city-name and fuzzy
// resolution passes. Exact lookups go straight to time.LoadLocation, so this
// list only has to cover zones worth finding by a partial query.
var zoneNames = []string{
	"Africa/Abidjan", "Africa/Accra", "Africa/Addis_Ababa", "Africa/Algiers",
	"Africa/Cairo", "Africa/Casablanca", "Africa/Dakar", "Africa/Dar_es_Salaam",
	"Africa/Harare", "Africa/Johannesburg", "Africa/Kampala", "Africa/Khartoum",
	"Africa/Kinshasa", "Africa/Lagos", "Africa/Luanda", "Africa/Lusaka",
	"Africa/Maputo", "Africa/Nairobi", "Africa/Tripoli", "Africa/Tunis",
	"America/Anchorage", "America/Argentina/Buenos_Aires", "America/Bogota",
	"America/Cancun", "America/Caracas", "America/Chicago", "America/Costa_Rica",
	"America/Denver", "America/Edmonton", "America/Fortaleza",
	"America/Guatemala", "America/Guayaquil", "America/Halifax",
	"America/Havana", "America/Jamaica", "America/La_Paz", "America/Lima",
	"America/Los_Angeles", "America/Manaus", "America/Mexico_City",
	"America/Montevideo", "America/New_York", "America/Panama",
	"America/Phoenix", "America/Puerto_Rico", "America/Santiago",
	"America/Santo_Domingo", "America/Sao_Paulo", "America/St_Johns",
	"America/Tijuana", "America/Toronto", "America/Vancouver",
	"America/Winnipeg",
	"Asia/Almaty", "Asia/Amman", "Asia/Aqtobe", "Asia/Ashgabat", "Asia/Baghdad",
	"Asia/Bahrain", "Asia/Baku", "Asia/Bangkok", "Asia/Beirut", "Asia/Bishkek",
	"Asia/Colombo", "Asia/Damascus", "Asia/Dhaka", "Asia/Dubai",
	"Asia/Dushanbe", "Asia/Ho_Chi_Minh", "Asia/Hong_Kong", "Asia/Irkutsk",
	"Asia/Jakarta", "Asia/Jerusalem", "Asia/Kabul", "Asia/Karachi",
	"Asia/Kathmandu", "Asia/Kolkata", "Asia/Krasnoyarsk", "Asia/Kuala_Lumpur",
	"Asia/Kuwait", "Asia/Macau", "Asia/Makassar", "Asia/Manila",
	"Asia/Muscat", "Asia/Nicosia", "Asia/Novosibirsk", "Asia/Phnom_Penh",
	"Asia/Qatar", "Asia/Riyadh", "Asia/Samarkand", "Asia/Seoul",
	"Asia/Shanghai", "Asia/Singapore", "Asia/Taipei", "Asia/Tashkent",
	"Asia/Tbilisi", "Asia/Tehran", "Asia/Tokyo", "Asia/Ulaanbaatar",
	"Asia/Urumqi", "Asia/Vientiane", "Asia/Vladivostok", "Asia/Yangon",
	"Asia/Yekaterinburg", "Asia/Yerevan",
	"Atlantic/Azores", "Atlantic/Canary", "Atlantic/Reykjavik",
	"Australia/Adelaide", "Australia/Brisbane", "Australia/Darwin",
	"Australia/Hobart", "Australia/Melbourne", "Australia/Perth",
	"Australia/Sydney",
	"Europe/Amsterdam", "Europe/Andorra", "Europe/Athens", "Europe/Belgrade",
	"Europe/Berlin", "Europe/Bratislava", "Europe/Brussels", "Europe/Bucharest",
	"Europe/Budapest", "Europe/Chisinau", "Europe/Copenhagen", "Europe/Dublin",
	"Europe/Helsinki", "Europe/Istanbul", "Europe/Kaliningrad", "Europe/Kyiv",
	"Europe/Lisbon", "Europe/Ljubljana", "Europe/London", "Europe/Luxembourg",
	"Europe/Madrid", "Europe/Malta", "Europe/Minsk", "Europe/Monaco",
	"Europe/Moscow", "Europe/Oslo", "Europe/Paris", "Europe/Podgorica",
	"Europe/Prague", "Europe/Riga", "Europe/Rome", "Europe/Samara",
	"Europe/San_Marino", "Europe/Sarajevo", "Europe/Skopje", "Europe/Sofia",
	"Europe/Stockholm", "Europe/Tallinn", "Europe/Tirana", "Europe/Vienna",
	"Europe/Vilnius", "Europe/Volgograd", "Europe/Warsaw", "Europe/Zagreb",
	"Europe/Zurich",
	"Indian/Maldives", "Indian/Mauritius",
	"Pacific/Apia", "Pacific/Auckland", "Pacific/Fiji", "Pacific/Guam",
	"Pacific/Honolulu", "Pacific/Port_Moresby", "Pacific/Tahiti",
	"UTC",
}
