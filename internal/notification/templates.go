package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"storefront/internal/models"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}

const layoutOpen = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`

var templates = map[models.OrderStatus]emailTemplate{
	models.OrderStatusApproved: {
		subject: "Order Confirmation - Your Purchase is Complete!",
		body: template.Must(template.New("approved").Funcs(funcs).Parse(layoutOpen + `
<h1 style="color: #4CAF50;">Order Confirmed!</h1>
<p>Dear {{.Customer.FullName}},</p>
<p>Thank you for your purchase. Your order has been successfully processed.</p>
<h2>Order Details</h2>
<p><strong>Order ID:</strong> {{.OrderID}}</p>
<p><strong>Product:</strong> {{.Product.Name}} ({{.Product.Variant}})</p>
<p><strong>Quantity:</strong> {{.Product.Quantity}}</p>
<p><strong>Total:</strong> {{money .Totals.Total}}</p>
<p>We'll notify you when your order ships.</p>
<p>Thank you for shopping with us!</p>
</div>`)),
	},
	models.OrderStatusDeclined: {
		subject: "Payment Declined - Action Required",
		body: template.Must(template.New("declined").Funcs(funcs).Parse(layoutOpen + `
<h1 style="color: #F44336;">Payment Declined</h1>
<p>Dear {{.Customer.FullName}},</p>
<p>We're sorry, but your payment for order {{.OrderID}} was declined.</p>
<h2>Order Details</h2>
<p><strong>Product:</strong> {{.Product.Name}} ({{.Product.Variant}})</p>
<p><strong>Quantity:</strong> {{.Product.Quantity}}</p>
<p><strong>Total:</strong> {{money .Totals.Total}}</p>
<p>Please check your payment details and try again, or contact your bank for more information.</p>
<p><a href="#" style="background-color: #4CAF50; color: white; padding: 10px 15px; text-decoration: none; border-radius: 4px;">Try Again</a></p>
<p>Need help? Contact our support team.</p>
</div>`)),
	},
	models.OrderStatusError: {
		subject: "Order Processing Error",
		body: template.Must(template.New("error").Funcs(funcs).Parse(layoutOpen + `
<h1 style="color: #FF9800;">Payment Processing Error</h1>
<p>Dear {{.Customer.FullName}},</p>
<p>We encountered an error while processing your payment for order {{.OrderID}}.</p>
<h2>Order Details</h2>
<p><strong>Product:</strong> {{.Product.Name}} ({{.Product.Variant}})</p>
<p><strong>Quantity:</strong> {{.Product.Quantity}}</p>
<p><strong>Total:</strong> {{money .Totals.Total}}</p>
<p>This is a temporary issue on our end. Please try again later or contact our support team for assistance.</p>
<p><a href="#" style="background-color: #4CAF50; color: white; padding: 10px 15px; text-decoration: none; border-radius: 4px;">Try Again</a></p>
<p>We apologize for the inconvenience.</p>
</div>`)),
	},
}

// Render produces the subject and HTML body for the order's status.
func Render(n models.OrderNotification) (subject, body string, err error) {
	tmpl, ok := templates[n.Status]
	if !ok {
		return "", "", fmt.Errorf("no email template for status %q", n.Status)
	}

	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, n); err != nil {
		return "", "", fmt.Errorf("rendering %s email: %w", n.Status, err)
	}
	return tmpl.subject, buf.String(), nil
}
