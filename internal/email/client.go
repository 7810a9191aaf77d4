package email

import (
	"crypto/tls"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

// Client sends transactional hotel emails over SMTP
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient creates a new email client instance
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail sends a single HTML email
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error setting sender: %w", err)
	}

	if err := m.To(to); err != nil {
		return fmt.Errorf("error setting recipient: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	log.Printf("SMTP: connecting to %s:%d as user=%s", c.host, c.port, c.user)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("error creating SMTP client (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	if err := client.DialAndSend(m); err != nil {
		// Add useful context without leaking credentials
		return fmt.Errorf("error sending email (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	return nil
}

// BookingInfo carries the booking details rendered into guest emails
type BookingInfo struct {
	ID             int
	GuestName      string
	GuestEmail     string
	RoomName       string
	CheckIn        time.Time
	CheckOut       time.Time
	Adults         int
	Children       int
	Nights         int
	BaseAmount     float64
	TaxAmount      float64
	DiscountAmount float64
	FinalAmount    float64
	CouponCode     string
	ConfirmedAt    time.Time
}

// SendBookingConfirmation emails the guest after a successful payment
func (c *Client) SendBookingConfirmation(booking BookingInfo) error {
	subject := fmt.Sprintf("Booking Confirmation #%d - %s", booking.ID, c.fromName)
	htmlBody := buildConfirmationHTML(booking)

	return c.SendEmail(booking.GuestEmail, subject, htmlBody)
}

// SendBookingCancellation emails the guest when a booking is cancelled
func (c *Client) SendBookingCancellation(booking BookingInfo) error {
	subject := fmt.Sprintf("Booking Cancelled #%d - %s", booking.ID, c.fromName)
	htmlBody := buildCancellationHTML(booking)

	return c.SendEmail(booking.GuestEmail, subject, htmlBody)
}

// buildConfirmationHTML renders the confirmation email body
func buildConfirmationHTML(booking BookingInfo) string {
	couponRow := ""
	if booking.CouponCode != "" {
		couponRow = fmt.Sprintf(`
									<tr>
										<td style="padding: 8px 0;"><strong>Coupon Applied:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>`, booking.CouponCode)
	}

	childrenNote := ""
	if booking.Children > 0 {
		childrenNote = fmt.Sprintf(", %d child(ren)", booking.Children)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Booking Confirmation</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
					<tr>
						<td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 28px;">Booking Confirmed!</h1>
							<p style="color: #ffffff; margin: 10px 0 0 0; font-size: 16px;">Thank you for booking with us</p>
						</td>
					</tr>

					<tr>
						<td style="padding: 40px 30px;">
							<div style="background-color: #f8f9fa; border-left: 4px solid #667eea; padding: 20px; margin-bottom: 30px;">
								<h2 style="margin: 0 0 15px 0; color: #333; font-size: 20px;">Booking Details</h2>
								<table width="100%%" cellpadding="0" cellspacing="0">
									<tr>
										<td style="padding: 8px 0;"><strong>Booking ID:</strong></td>
										<td style="padding: 8px 0; text-align: right;">#%d</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Room:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Check-in:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Check-out:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s (%d night(s))</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Guests:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%d adult(s)%s</td>
									</tr>%s
								</table>
							</div>

							<div style="margin-top: 30px; padding: 20px; background-color: #f8f9fa; border-radius: 8px;">
								<table width="100%%" cellpadding="0" cellspacing="0">
									<tr>
										<td style="padding: 8px 0;"><strong>Room Charges:</strong></td>
										<td style="padding: 8px 0; text-align: right;">₹%.2f</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Taxes (GST):</strong></td>
										<td style="padding: 8px 0; text-align: right;">₹%.2f</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Discount:</strong></td>
										<td style="padding: 8px 0; text-align: right; color: #28a745;">-₹%.2f</td>
									</tr>
									<tr style="border-top: 2px solid #667eea;">
										<td style="padding: 15px 0 0 0;"><strong style="font-size: 18px;">Total Paid:</strong></td>
										<td style="padding: 15px 0 0 0; text-align: right;"><strong style="font-size: 24px; color: #667eea;">₹%.2f</strong></td>
									</tr>
								</table>
							</div>

							<div style="margin-top: 30px; padding: 20px; background-color: #fff3cd; border-radius: 8px; border-left: 4px solid #ffc107;">
								<h4 style="margin: 0 0 10px 0; color: #856404;">Important Information</h4>
								<ul style="margin: 0; padding-left: 20px; color: #856404;">
									<li>Please present this email at check-in</li>
									<li>Check-in: 2:00 PM | Check-out: 12:00 PM</li>
									<li>For cancellations, contact us at least 48 hours in advance</li>
								</ul>
							</div>
						</td>
					</tr>

					<tr>
						<td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e0e0e0;">
							<p style="margin: 0 0 10px 0; color: #666; font-size: 14px;">
								If you have any questions, please contact us
							</p>
							<p style="margin: 0; color: #999; font-size: 12px;">
								This is an automated email, please do not reply directly
							</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		booking.ID,
		booking.RoomName,
		booking.CheckIn.Format("02/01/2006"),
		booking.CheckOut.Format("02/01/2006"),
		booking.Nights,
		booking.Adults,
		childrenNote,
		couponRow,
		booking.BaseAmount,
		booking.TaxAmount,
		booking.DiscountAmount,
		booking.FinalAmount,
	)
}

// buildCancellationHTML renders the cancellation email body
func buildCancellationHTML(booking BookingInfo) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Booking Cancelled</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden;">
					<tr>
						<td style="background-color: #dc3545; padding: 40px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 28px;">Booking Cancelled</h1>
						</td>
					</tr>
					<tr>
						<td style="padding: 40px 30px;">
							<p style="color: #333;">Dear %s,</p>
							<p style="color: #333;">Your booking #%d for %s (check-in %s) has been cancelled.</p>
							<p style="color: #333;">If a payment was made, the refund will be processed to your original payment method within 5 to 7 business days.</p>
							<p style="color: #666; font-size: 14px;">We hope to welcome you another time.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		booking.GuestName,
		booking.ID,
		booking.RoomName,
		booking.CheckIn.Format("02/01/2006"),
	)
}
