package render

// Alias lists for every logical display field, ordered by how commonly each
// spelling has been observed in API payloads. The remote schema is not
// fixed; any subset of these keys may be present, absent or empty.
var (
	numberAliases = []string{"number", "DocumentNumber", "documentNumber", "invoiceNumber"}
	dateAliases   = []string{"date", "DocumentDate", "documentDate", "issuedDate"}
	dueAliases    = []string{"paymentDueDate", "PaymentDueDate", "dueDate"}

	buyerNameAliases   = []string{"buyerName", "BuyerName", "customerName", "buyer.name"}
	buyerStreetAliases = []string{"buyerStreet", "BuyerStreet", "buyer.street"}
	buyerCityAliases   = []string{"buyerCity", "BuyerCity", "buyer.city"}
	buyerPostalAliases = []string{"buyerPostalCode", "BuyerPostalCode", "buyer.postalCode"}

	sellerNameAliases = []string{"sellerName", "SellerName", "issuerName", "operatorName", "operator"}

	currencyAliases = []string{"documentCurrency", "DocumentCurrency", "currency"}

	ibanAliases     = []string{"iban", "IBAN", "bankAccount", "bankAccountNumber"}
	bankNameAliases = []string{"bankName", "BankName", "bank"}

	itemsAliases = []string{"Items", "items", "lines"}

	itemNameAliases  = []string{"productName", "description", "name"}
	itemQtyAliases   = []string{"quantity", "qty"}
	itemUnitAliases  = []string{"unit", "measureUnit", "unitOfMeasure"}
	itemPriceAliases = []string{"priceInDocumentCurrency", "price", "unitPrice"}
	itemTotalAliases = []string{"amount", "netPriceInDocumentCurrency", "total"}

	subtotalAliases = []string{"totalNetAmount", "documentAmount"}
	totalAliases    = []string{"documentAmount", "amountLeftToBePaid", "totalNetAmount", "totalAmountInVatReportingCurr"}

	// qrTextAliases pick the payment/reference identifier encoded into the
	// QR code, most specific first.
	qrTextAliases = []string{"documentIdBarCode", "reference", "documentID", "number"}
)
