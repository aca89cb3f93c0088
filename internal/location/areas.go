package location

// Area is one entry of the administrative-area table: a province-level or
// city-level region name with its six-digit admin code, as used by the
// upstream weather API.
type Area struct {
	Name string
	Code string
}

// areaTable is the static lookup table backing free-text resolution and the
// /cities discovery endpoint. Province-level entries carry their own codes
// so direct-administered municipalities resolve without a city row.
var areaTable = []Area{
	// Province-level
	{"北京市", "110000"},
	{"天津市", "120000"},
	{"河北省", "130000"},
	{"山西省", "140000"},
	{"内蒙古自治区", "150000"},
	{"辽宁省", "210000"},
	{"吉林省", "220000"},
	{"黑龙江省", "230000"},
	{"上海市", "310000"},
	{"江苏省", "320000"},
	{"浙江省", "330000"},
	{"安徽省", "340000"},
	{"福建省", "350000"},
	{"江西省", "360000"},
	{"山东省", "370000"},
	{"河南省", "410000"},
	{"湖北省", "420000"},
	{"湖南省", "430000"},
	{"广东省", "440000"},
	{"广西壮族自治区", "450000"},
	{"海南省", "460000"},
	{"重庆市", "500000"},
	{"四川省", "510000"},
	{"贵州省", "520000"},
	{"云南省", "530000"},
	{"西藏自治区", "540000"},
	{"陕西省", "610000"},
	{"甘肃省", "620000"},
	{"青海省", "630000"},
	{"宁夏回族自治区", "640000"},
	{"新疆维吾尔自治区", "650000"},

	// City-level
	{"石家庄市", "130100"},
	{"唐山市", "130200"},
	{"秦皇岛市", "130300"},
	{"太原市", "140100"},
	{"大同市", "140200"},
	{"呼和浩特市", "150100"},
	{"包头市", "150200"},
	{"沈阳市", "210100"},
	{"大连市", "210200"},
	{"长春市", "220100"},
	{"吉林市", "220200"},
	{"哈尔滨市", "230100"},
	{"南京市", "320100"},
	{"无锡市", "320200"},
	{"徐州市", "320300"},
	{"苏州市", "320500"},
	{"南通市", "320600"},
	{"杭州市", "330100"},
	{"宁波市", "330200"},
	{"温州市", "330300"},
	{"合肥市", "340100"},
	{"芜湖市", "340200"},
	{"福州市", "350100"},
	{"厦门市", "350200"},
	{"南昌市", "360100"},
	{"九江市", "360400"},
	{"济南市", "370100"},
	{"青岛市", "370200"},
	{"淄博市", "370300"},
	{"烟台市", "370600"},
	{"潍坊市", "370700"},
	{"郑州市", "410100"},
	{"洛阳市", "410300"},
	{"武汉市", "420100"},
	{"宜昌市", "420500"},
	{"长沙市", "430100"},
	{"株洲市", "430200"},
	{"广州市", "440100"},
	{"韶关市", "440200"},
	{"深圳市", "440300"},
	{"珠海市", "440400"},
	{"东莞市", "441900"},
	{"南宁市", "450100"},
	{"桂林市", "450300"},
	{"海口市", "460100"},
	{"三亚市", "460200"},
	{"成都市", "510100"},
	{"绵阳市", "510700"},
	{"贵阳市", "520100"},
	{"昆明市", "530100"},
	{"大理白族自治州", "532900"},
	{"拉萨市", "540100"},
	{"西安市", "610100"},
	{"咸阳市", "610400"},
	{"兰州市", "620100"},
	{"西宁市", "630100"},
	{"银川市", "640100"},
	{"乌鲁木齐市", "650100"},
}
