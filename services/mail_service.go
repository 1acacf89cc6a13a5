package services

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"dispatchboard/configs"
	"dispatchboard/entity"
)

// Mail is a rendered notification message.
type Mail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// MailService renders and sends driver notification mails over SMTP.
type MailService struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewMailService(cfg *configs.Config) *MailService {
	return &MailService{
		host: cfg.MailHost,
		port: cfg.MailPort,
		user: cfg.MailUser,
		pass: cfg.MailPass,
		from: cfg.MailFrom,
	}
}

// dayLabel turns "11/28" into "28日".
func dayLabel(date string) string {
	if date == "" {
		return ""
	}
	parts := strings.Split(date, "/")
	day := parts[0]
	if len(parts) > 1 && parts[1] != "" {
		day = parts[1]
	}
	return strings.TrimPrefix(day, "0") + "日"
}

func sizeLabel(s entity.Size) string {
	if s == entity.Size40 {
		return "40F"
	}
	return "20F"
}

// BuildPickupMail renders the 取り (pickup) request.
func BuildPickupMail(c entity.Container, d entity.Driver) Mail {
	day := dayLabel(c.Date)
	size := sizeLabel(c.Size)
	return Mail{
		Subject: fmt.Sprintf("【取り】%s %s %s %s %s", day, c.ETA, c.PickupYard, size, c.No),
		Body:    mailBody(c, d, day, size, "下記コンテナの取りのご依頼です。"),
	}
}

// BuildDeliveryMail renders the 配送 (delivery) request.
func BuildDeliveryMail(c entity.Container, d entity.Driver) Mail {
	day := dayLabel(c.Date)
	size := sizeLabel(c.Size)
	return Mail{
		Subject: fmt.Sprintf("【配送】%s %s %s %s %s", day, c.ETA, c.Destination, size, c.No),
		Body:    mailBody(c, d, day, size, "下記コンテナの配送のご依頼です。"),
	}
}

func mailBody(c entity.Container, d entity.Driver, day, size, intro string) string {
	lines := []string{
		d.Name + " さん",
		"",
		intro,
		"",
		"日付：" + day,
		"時間：" + c.ETA,
		"搬出：" + c.PickupYard,
		"搬入：" + c.DropoffYard,
		fmt.Sprintf("コンテナ：%s（%s／%s）", c.No, size, c.KindCode),
		"配送先：" + c.Destination,
	}
	if c.DestAddress != "" {
		lines = append(lines, "住所："+c.DestAddress)
	}
	if c.DestPhone != "" {
		lines = append(lines, "TEL："+c.DestPhone)
	}
	lines = append(lines, "", "よろしくお願いします。")
	return strings.Join(lines, "\n")
}

// Send delivers the mail to a single recipient. Failures are returned so the
// operator sees them in the response rather than in a log.
func (m *MailService) Send(to string, mail Mail) error {
	if m.host == "" || m.from == "" {
		return errors.New("mail is not configured")
	}
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + mail.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		mail.Body,
	}, "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg))
}
