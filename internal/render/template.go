package render

import "html/template"

// document is the fully resolved display model handed to the template.
// Every string field is auto-escaped on insertion; the URL-typed fields are
// either generated internally (QR) or validated before being trusted.
type document struct {
	Number string
	Date   string
	Due    string

	BuyerName   string
	BuyerStreet string
	BuyerCity   string

	SellerName string
	IBAN       string
	BankName   string

	Items []itemRow

	Subtotal string
	Total    string

	QR        template.URL
	Logo      template.URL
	Watermark template.URL
}

// itemRow is one line of the items table, values pre-formatted for display.
type itemRow struct {
	Name      string
	Qty       string
	Unit      string
	UnitPrice string
	Total     string
}

// invoiceTemplate is a self-contained A4 print layout: inline styles only,
// images as data URIs, no external fetches at render time.
var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!doctype html>
<html lang="bg">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Invoice {{.Number}}</title>
<style>
  :root{ --g:#2ecc71; --d:#1f2a33; --t:#0b1220; --mut:#667085; --line:#e6e8ec; }
  *{ box-sizing:border-box; }
  body{ margin:0; font-family:system-ui,-apple-system,Segoe UI,Roboto,Arial; background:#fff; color:var(--t); }
  .page{ width:210mm; min-height:297mm; padding:14mm; position:relative; }
  .watermark{ position:absolute; inset:0; display:flex; align-items:center; justify-content:center; opacity:.06; pointer-events:none; }
  .watermark img{ max-width:70%; }
  .top{ display:flex; justify-content:space-between; align-items:flex-start; gap:14px; }
  .logo{ max-height:22mm; }
  .qr{ width:28mm; height:28mm; border:2px solid var(--g); border-radius:10px; padding:4px; }
  .qr img{ width:100%; height:100%; }
  .h1{ font-size:44px; letter-spacing:10px; color:#b9b9b9; font-weight:900; text-align:right; margin:0; }
  .meta{ margin-top:6mm; width:100%; border-top:4px solid var(--g); padding-top:3mm; }
  .meta table{ width:100%; border-collapse:collapse; font-size:12px; }
  .meta th{ text-align:left; color:var(--mut); padding:2px 0; font-weight:800; }
  .meta td{ padding:2px 0; font-weight:800; }
  .bill{ margin-top:8mm; }
  .bill .label{ font-weight:900; font-size:12px; color:var(--mut); }
  .bill .name{ font-weight:900; font-size:20px; margin-top:2mm; }
  .bill .addr{ font-size:12px; color:var(--mut); margin-top:2mm; line-height:1.35; }
  .table{ margin-top:10mm; border:1px solid var(--line); border-radius:12px; overflow:hidden; }
  .thead{ background:linear-gradient(90deg,var(--g),var(--g)); color:#fff; font-weight:900; }
  table.items{ width:100%; border-collapse:collapse; font-size:13px; }
  .thead th{ padding:12px; text-align:left; }
  .thead th.num{ text-align:right; }
  .items td{ padding:12px; border-top:1px solid var(--line); vertical-align:top; }
  .items td.num{ text-align:right; white-space:nowrap; }
  .title{ font-weight:900; }
  .b{ font-weight:900; }
  .totals{ margin-top:10mm; display:flex; justify-content:flex-end; }
  .box{ width:90mm; border-radius:14px; overflow:hidden; border:1px solid var(--line); }
  .box .row{ display:flex; justify-content:space-between; padding:10px 12px; background:#f7f7f8; font-weight:800; }
  .box .row.dark{ background:var(--d); color:#fff; }
  .box .row.green{ background:var(--g); color:#fff; font-size:18px; font-weight:900; }
  .pay{ margin-top:10mm; font-size:12px; color:var(--mut); }
  .pay .b{ color:var(--t); }
  .footer{ margin-top:16mm; background:var(--g); color:#fff; font-weight:900; padding:14px; border-radius:14px; font-size:22px; }
</style>
</head>
<body>
  <div class="page">
    {{if .Watermark}}<div class="watermark"><img alt="" src="{{.Watermark}}" /></div>{{end}}
    <div class="top">
      <div>
        {{if .Logo}}<img class="logo" alt="Logo" src="{{.Logo}}" />{{end}}
        <div class="bill">
          <div class="label">INVOICE TO</div>
          <div class="name">{{if .BuyerName}}{{.BuyerName}}{{else}}Client Name{{end}}</div>
          <div class="addr">
            {{if .BuyerStreet}}{{.BuyerStreet}}<br/>{{end}}
            {{if .BuyerCity}}{{.BuyerCity}}{{end}}
          </div>
        </div>
      </div>
      <div style="flex:1">
        <p class="h1">INVOICE</p>
        <div class="meta">
          <table>
            <tr>
              <th>Invoice No</th><td>{{.Number}}</td>
              <th>Invoice Date</th><td>{{.Date}}</td>
              <th>Due Date</th><td>{{.Due}}</td>
            </tr>
          </table>
        </div>
      </div>
      {{if .QR}}
      <div class="qr">
        <img alt="QR" src="{{.QR}}" />
      </div>
      {{end}}
    </div>

    <div class="table">
      <table class="items">
        <thead class="thead">
          <tr>
            <th>Item Description</th>
            <th class="num">Quantity</th>
            <th class="num">Unit</th>
            <th class="num">Unit Price</th>
            <th class="num">Total</th>
          </tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr>
            <td class="desc"><div class="title">{{.Name}}</div></td>
            <td class="num">{{.Qty}}</td>
            <td class="num">{{.Unit}}</td>
            <td class="num">{{.UnitPrice}}</td>
            <td class="num b">{{.Total}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>

    <div class="totals">
      <div class="box">
        <div class="row dark"><span>Subtotal</span><span>{{.Subtotal}}</span></div>
        <div class="row green"><span>TOTAL</span><span>{{.Total}}</span></div>
      </div>
    </div>

    {{if or .SellerName .IBAN .BankName}}
    <div class="pay">
      {{if .SellerName}}<div>Issued by: <span class="b">{{.SellerName}}</span></div>{{end}}
      {{if .BankName}}<div>Bank: <span class="b">{{.BankName}}</span></div>{{end}}
      {{if .IBAN}}<div>IBAN: <span class="b">{{.IBAN}}</span></div>{{end}}
    </div>
    {{end}}

    <div class="footer">Thank you for your business!</div>
  </div>
</body>
</html>
`))
