package bot

import (
	"github.com/bwmarrin/discordgo"
)

var palette = []string{
	"amarillo", "azul", "blanco", "celeste", "gris", "marrón", "naranja",
	"negro", "rojo", "rosa", "turquesa", "verde", "violeta",
}

// menuComponents: dos botones y un select, todos con key "menu".
func (b *bot) menuComponents() []discordgo.MessageComponent {
	opts := make([]discordgo.SelectMenuOption, 0, 5)
	for _, c := range palette[:5] {
		opts = append(opts, discordgo.SelectMenuOption{Label: c, Value: c})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Style:    discordgo.PrimaryButton,
				Label:    "Opción A",
				CustomID: b.r.CustomID("menu", "a"),
				Emoji:    &discordgo.ComponentEmoji{Name: "🅰️"},
			},
			discordgo.Button{
				Style:    discordgo.SecondaryButton,
				Label:    "Opción B",
				CustomID: b.r.CustomID("menu", "b"),
				Emoji:    &discordgo.ComponentEmoji{Name: "🅱️"},
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    b.r.CustomID("menu", "pick"),
				Placeholder: "Elegí un color",
				Options:     opts,
			},
		}},
	}
}

func (b *bot) feedbackForm() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "comment",
				Label:       "Comentario",
				Style:       discordgo.TextInputParagraph,
				Placeholder: "¿Qué mejorarías?",
				MaxLength:   1000,
			},
		}},
	}
}
