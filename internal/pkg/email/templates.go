// internal/pkg/email/templates.go
package email

const orderConfirmationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.SiteName}}</title></head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
    <h1 style="color: #0f3b57;">{{.SiteName}}</h1>
    <p>Aloha {{.CustomerName}},</p>
    <p>Thanks for your order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}}.</p>
    <table style="width: 100%; border-collapse: collapse;">
      {{range .Items}}
      <tr>
        <td style="padding: 6px 0;">{{.Name}}{{if .Detail}}<br><small style="color: #666;">{{.Detail}}</small>{{end}}</td>
        <td style="padding: 6px 0; text-align: center;">x{{.Quantity}}</td>
        <td style="padding: 6px 0; text-align: right;">{{.Total}}</td>
      </tr>
      {{end}}
    </table>
    <p style="text-align: right; font-size: 18px;"><strong>Total: {{.OrderTotal}}</strong></p>
    <p>Rental gear is ready for pickup at the shop on your first rental day.</p>
    <hr>
    <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}</p>
  </div>
</body>
</html>`

const inquiryReceivedTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.ListingName}} inquiry</title></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>New inquiry for {{.ListingName}}</h2>
  <p><strong>{{.GuestName}}</strong> ({{.ContactMethod}}: {{.ContactValue}})</p>
  <p>{{.CheckIn}} to {{.CheckOut}}: {{.Nights}} nights, {{.Guests}} guests</p>
  <p>Estimated total: {{.EstimatedTotal}}</p>
  {{if .Message}}<blockquote style="border-left: 3px solid #ccc; padding-left: 10px;">{{.Message}}</blockquote>{{end}}
  <p style="font-size: 12px; color: #666;">Mark the inquiry as contacted in the admin once you reply.</p>
</body>
</html>`
