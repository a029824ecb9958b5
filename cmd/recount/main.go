// Команда recount сверяет счетчики вопросов с записями о голосах и при
// необходимости восстанавливает их. Счетчики votes_a/votes_b должны в точности
// соответствовать количеству записей votes по каждой стороне; расхождение
// возможно только после ручного вмешательства в БД или сбоя восстановления
// из бэкапа.
//
// Использование:
//
//	recount -dsn "host=localhost port=5432 user=postgres dbname=thisorthat sslmode=disable" [-fix]
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

const driftQuery = `
SELECT q.id, q.votes_a, q.votes_b,
       COALESCE(c.real_a, 0) AS real_a,
       COALESCE(c.real_b, 0) AS real_b
FROM questions q
LEFT JOIN (
    SELECT question_id,
           COUNT(*) FILTER (WHERE choice = 'a') AS real_a,
           COUNT(*) FILTER (WHERE choice = 'b') AS real_b
    FROM votes
    GROUP BY question_id
) c ON c.question_id = q.id
WHERE q.votes_a <> COALESCE(c.real_a, 0)
   OR q.votes_b <> COALESCE(c.real_b, 0)
ORDER BY q.id`

const fixStmt = `
UPDATE questions q
SET votes_a = COALESCE(c.real_a, 0),
    votes_b = COALESCE(c.real_b, 0)
FROM (
    SELECT question_id,
           COUNT(*) FILTER (WHERE choice = 'a') AS real_a,
           COUNT(*) FILTER (WHERE choice = 'b') AS real_b
    FROM votes
    GROUP BY question_id
) c
WHERE c.question_id = q.id
  AND (q.votes_a <> c.real_a OR q.votes_b <> c.real_b)`

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_DSN"), "строка подключения к PostgreSQL")
	fix := flag.Bool("fix", false, "восстановить счетчики из записей о голосах")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("требуется -dsn или переменная окружения DATABASE_DSN")
	}

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	rows, err := db.Query(driftQuery)
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	drifted := 0
	for rows.Next() {
		var id int64
		var storedA, storedB, realA, realB int64
		if err := rows.Scan(&id, &storedA, &storedB, &realA, &realB); err != nil {
			log.Fatal(err)
		}
		drifted++
		fmt.Printf("вопрос #%d: хранится %d/%d, по голосам %d/%d\n", id, storedA, storedB, realA, realB)
	}
	if err := rows.Err(); err != nil {
		log.Fatal(err)
	}

	if drifted == 0 {
		fmt.Println("Расхождений не найдено, счетчики согласованы с голосами.")
		return
	}
	fmt.Printf("Всего вопросов с расхождениями: %d\n", drifted)

	if !*fix {
		fmt.Println("Запустите с -fix для восстановления счетчиков.")
		return
	}

	res, err := db.Exec(fixStmt)
	if err != nil {
		log.Fatal(err)
	}
	n, _ := res.RowsAffected()
	fmt.Printf("Восстановлено вопросов: %d\n", n)
}
